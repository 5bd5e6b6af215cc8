package cleanup

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/bnema/azops/internal/boundaries/out"
	"github.com/bnema/azops/internal/domain"
	"github.com/bnema/azops/pkg/logger"
)

// Filter selects tags and manifests whose creation time lies inside a DateRange.
type Filter struct {
	registry     out.RegistryClient
	keepReleases bool
	log          *logger.Logger
}

// NewFilter creates a date filter over registry. When keepReleases is set,
// tags named like a release version (1.2.3, v2.0.0) are never selected.
func NewFilter(registry out.RegistryClient, keepReleases bool, log *logger.Logger) *Filter {
	return &Filter{
		registry:     registry,
		keepReleases: keepReleases,
		log:          log,
	}
}

// FilterTagsByDate returns the hydrated tags of repository created inside r,
// in listing order. Tags whose properties cannot be fetched are dropped.
func (f *Filter) FilterTagsByDate(ctx context.Context, repository string, r domain.DateRange) []domain.TagProperties {
	listed := f.registry.ListTags(ctx, repository)
	if len(listed) == 0 {
		return nil
	}

	var selected []domain.TagProperties
	for _, item := range listed {
		tag, ok := f.registry.GetTagProperties(ctx, repository, item.Name)
		if !ok {
			f.log.Debug("Skipping tag without properties", "tag", item.Name)
			continue
		}
		if f.keepReleases && isRelease(tag.Name) {
			f.log.Debug("Keeping release tag", "tag", tag.Name)
			continue
		}
		if !f.include("tag", tag.Name, tag.CreatedOn, r) {
			continue
		}
		selected = append(selected, tag)
	}

	f.log.Info("Tags matching date range", "count", len(selected), "repository", repository, "range", r.String())
	return selected
}

// FilterManifestsByDate returns the hydrated manifests of repository created
// inside r, in listing order. Manifests whose properties cannot be fetched are dropped.
func (f *Filter) FilterManifestsByDate(ctx context.Context, repository string, r domain.DateRange) []domain.ManifestProperties {
	listed := f.registry.ListManifests(ctx, repository)
	if len(listed) == 0 {
		return nil
	}

	var selected []domain.ManifestProperties
	for _, item := range listed {
		manifest, ok := f.registry.GetManifestProperties(ctx, repository, item.Digest)
		if !ok {
			f.log.Debug("Skipping manifest without properties", "manifest", item.Digest)
			continue
		}
		if !f.include("manifest", manifest.Digest, manifest.CreatedOn, r) {
			continue
		}
		selected = append(selected, manifest)
	}

	f.log.Info("Manifests matching date range", "count", len(selected), "repository", repository, "range", r.String())
	return selected
}

// include applies the open-interval predicate and logs the decision.
func (f *Filter) include(kind, reference string, createdOn time.Time, r domain.DateRange) bool {
	switch {
	case !createdOn.Before(r.End):
		f.log.Debug("Excluded, created on or after end date", kind, reference, "created_on", createdOn, "end", r.End)
		return false
	case r.Start != nil && !createdOn.After(*r.Start):
		f.log.Debug("Excluded, created on or before start date", kind, reference, "created_on", createdOn, "start", *r.Start)
		return false
	default:
		f.log.Debug("Included", kind, reference, "created_on", createdOn)
		return true
	}
}

// isRelease reports whether tag is a plain release version such as 1.2.3 or
// v1.2.3. Prereleases and partial versions are not releases.
func isRelease(tag string) bool {
	v, err := semver.StrictNewVersion(strings.TrimPrefix(tag, "v"))
	return err == nil && v.Prerelease() == ""
}
