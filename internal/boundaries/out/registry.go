// Package out defines output ports (interfaces) for infrastructure.
// These interfaces define the contract between use cases and driven adapters
// (container registry, rate limiter, report sink).
package out

import (
	"context"

	"github.com/bnema/azops/internal/domain"
)

// RegistryClient defines the contract for tag and manifest operations against
// a single registry endpoint.
//
// Implementations recover from failures at the boundary: listing errors yield
// an empty slice and lookup errors yield ok == false. Only the delete calls
// surface their error, and callers treat it as informational.
type RegistryClient interface {
	// ListTags returns every tag of repository, or an empty slice.
	ListTags(ctx context.Context, repository string) []domain.TagProperties

	// ListManifests returns every manifest of repository, or an empty slice.
	ListManifests(ctx context.Context, repository string) []domain.ManifestProperties

	// GetTagProperties fetches one tag. ok is false when it is absent or unreadable.
	GetTagProperties(ctx context.Context, repository, tag string) (props domain.TagProperties, ok bool)

	// GetManifestProperties fetches one manifest by digest.
	GetManifestProperties(ctx context.Context, repository, digest string) (props domain.ManifestProperties, ok bool)

	// DeleteTag removes a tag. The error is logged by the implementation.
	DeleteTag(ctx context.Context, repository, tag string) error

	// DeleteManifest removes a manifest by digest, or by tag after resolving it.
	DeleteManifest(ctx context.Context, repository, digestOrTag string) error
}

// ReportWriter persists the outcome of a cleanup run.
type ReportWriter interface {
	WriteReport(report domain.CleanupReport) error
}
