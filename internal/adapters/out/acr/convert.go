package acr

import (
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/containers/azcontainerregistry"

	"github.com/bnema/azops/internal/domain"
)

func tagFromAttributes(repository string, attrs *azcontainerregistry.TagAttributes) domain.TagProperties {
	return domain.TagProperties{
		Repository:    repository,
		Name:          deref(attrs.Name),
		Digest:        deref(attrs.Digest),
		CreatedOn:     derefTime(attrs.CreatedOn),
		LastUpdatedOn: derefTime(attrs.LastUpdatedOn),
	}
}

func manifestFromAttributes(repository string, attrs *azcontainerregistry.ManifestAttributes) domain.ManifestProperties {
	tags := make([]string, 0, len(attrs.Tags))
	for _, tag := range attrs.Tags {
		if tag != nil {
			tags = append(tags, *tag)
		}
	}

	var size int64
	if attrs.Size != nil {
		size = *attrs.Size
	}

	return domain.ManifestProperties{
		Repository:    repository,
		Digest:        deref(attrs.Digest),
		Tags:          tags,
		MediaType:     deref(attrs.MediaType),
		Size:          size,
		CreatedOn:     derefTime(attrs.CreatedOn),
		LastUpdatedOn: derefTime(attrs.LastUpdatedOn),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
