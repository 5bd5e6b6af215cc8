// Package in defines input ports (interfaces) for use cases.
package in

import (
	"context"

	"github.com/bnema/azops/internal/domain"
)

// CleanupService defines date-range cleanup of registry artifacts.
type CleanupService interface {
	// CleanupTags deletes every tag of repository created inside r.
	CleanupTags(ctx context.Context, repository string, r domain.DateRange) domain.CleanupReport

	// CleanupManifests deletes every manifest of repository created inside r.
	CleanupManifests(ctx context.Context, repository string, r domain.DateRange) domain.CleanupReport
}
