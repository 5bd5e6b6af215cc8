package cleanup

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/azops/internal/domain"
)

var errForbidden = errors.New("forbidden")

// fakeRegistry is an in-memory registry that removes items on delete.
type fakeRegistry struct {
	tags      []domain.TagProperties
	manifests []domain.ManifestProperties

	failGet    map[string]bool
	failDelete map[string]bool
	deleted    map[string]bool

	deleteCalls []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		failGet:    make(map[string]bool),
		failDelete: make(map[string]bool),
		deleted:    make(map[string]bool),
	}
}

func (f *fakeRegistry) addTag(name string, created time.Time) {
	f.tags = append(f.tags, domain.TagProperties{
		Repository: "app",
		Name:       name,
		CreatedOn:  created,
	})
}

func (f *fakeRegistry) addManifest(dgst string, created time.Time) {
	f.manifests = append(f.manifests, domain.ManifestProperties{
		Repository: "app",
		Digest:     dgst,
		CreatedOn:  created,
	})
}

func (f *fakeRegistry) ListTags(_ context.Context, _ string) []domain.TagProperties {
	out := []domain.TagProperties{}
	for _, tag := range f.tags {
		if !f.deleted[tag.Name] {
			// Listing snapshots carry no trustworthy timestamp.
			out = append(out, domain.TagProperties{Repository: tag.Repository, Name: tag.Name})
		}
	}
	return out
}

func (f *fakeRegistry) ListManifests(_ context.Context, _ string) []domain.ManifestProperties {
	out := []domain.ManifestProperties{}
	for _, m := range f.manifests {
		if !f.deleted[m.Digest] {
			out = append(out, domain.ManifestProperties{Repository: m.Repository, Digest: m.Digest})
		}
	}
	return out
}

func (f *fakeRegistry) GetTagProperties(_ context.Context, _ string, tag string) (domain.TagProperties, bool) {
	if f.failGet[tag] || f.deleted[tag] {
		return domain.TagProperties{}, false
	}
	for _, t := range f.tags {
		if t.Name == tag {
			return t, true
		}
	}
	return domain.TagProperties{}, false
}

func (f *fakeRegistry) GetManifestProperties(_ context.Context, _ string, dgst string) (domain.ManifestProperties, bool) {
	if f.failGet[dgst] || f.deleted[dgst] {
		return domain.ManifestProperties{}, false
	}
	for _, m := range f.manifests {
		if m.Digest == dgst {
			return m, true
		}
	}
	return domain.ManifestProperties{}, false
}

func (f *fakeRegistry) DeleteTag(_ context.Context, _ string, tag string) error {
	return f.remove(tag)
}

func (f *fakeRegistry) DeleteManifest(_ context.Context, _ string, dgst string) error {
	return f.remove(dgst)
}

func (f *fakeRegistry) remove(ref string) error {
	f.deleteCalls = append(f.deleteCalls, ref)
	if f.failDelete[ref] {
		return errForbidden
	}
	f.deleted[ref] = true
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := date(year, month, day)
	return &t
}
