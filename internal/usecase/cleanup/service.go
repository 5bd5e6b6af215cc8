// Package cleanup implements the date-range registry cleanup use case.
package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/azops/internal/boundaries/in"
	"github.com/bnema/azops/internal/boundaries/out"
	"github.com/bnema/azops/internal/domain"
	"github.com/bnema/azops/pkg/logger"
)

// Ensure Service implements in.CleanupService.
var _ in.CleanupService = (*Service)(nil)

// Options tunes a cleanup run.
type Options struct {
	// DryRun selects candidates without deleting anything.
	DryRun bool
	// KeepReleases protects release-version tags from tag cleanup.
	KeepReleases bool
}

// Service deletes the tags or manifests of a repository created inside a
// date range and verifies each deletion by re-fetching the item.
type Service struct {
	registry out.RegistryClient
	limiter  out.DeletionLimiter
	filter   *Filter
	opts     Options
	log      *logger.Logger

	now   func() time.Time
	runID func() string
}

// NewService creates a cleanup service. A nil limiter disables pacing.
func NewService(
	registry out.RegistryClient,
	limiter out.DeletionLimiter,
	opts Options,
	log *logger.Logger,
) *Service {
	return &Service{
		registry: registry,
		limiter:  limiter,
		filter:   NewFilter(registry, opts.KeepReleases, log),
		opts:     opts,
		log:      log,
		now:      time.Now,
		runID:    uuid.NewString,
	}
}

// target is one candidate with the calls needed to delete and re-check it.
type target struct {
	reference string
	createdOn time.Time
	remove    func(ctx context.Context) error
	present   func(ctx context.Context) bool
}

// CleanupTags deletes every tag of repository created inside r.
func (s *Service) CleanupTags(ctx context.Context, repository string, r domain.DateRange) domain.CleanupReport {
	report := s.newReport(domain.CleanupKindTags, repository, r)
	log := s.log.With("run_id", report.RunID)

	tags := s.filter.FilterTagsByDate(ctx, repository, r)
	targets := make([]target, 0, len(tags))
	for _, tag := range tags {
		name := tag.Name
		targets = append(targets, target{
			reference: name,
			createdOn: tag.CreatedOn,
			remove: func(ctx context.Context) error {
				return s.registry.DeleteTag(ctx, repository, name)
			},
			present: func(ctx context.Context) bool {
				_, ok := s.registry.GetTagProperties(ctx, repository, name)
				return ok
			},
		})
	}

	return s.run(ctx, log, "tag", report, targets)
}

// CleanupManifests deletes every manifest of repository created inside r.
func (s *Service) CleanupManifests(ctx context.Context, repository string, r domain.DateRange) domain.CleanupReport {
	report := s.newReport(domain.CleanupKindManifests, repository, r)
	log := s.log.With("run_id", report.RunID)

	manifests := s.filter.FilterManifestsByDate(ctx, repository, r)
	targets := make([]target, 0, len(manifests))
	for _, manifest := range manifests {
		dgst := manifest.Digest
		targets = append(targets, target{
			reference: dgst,
			createdOn: manifest.CreatedOn,
			remove: func(ctx context.Context) error {
				return s.registry.DeleteManifest(ctx, repository, dgst)
			},
			present: func(ctx context.Context) bool {
				_, ok := s.registry.GetManifestProperties(ctx, repository, dgst)
				return ok
			},
		})
	}

	return s.run(ctx, log, "manifest", report, targets)
}

func (s *Service) newReport(kind domain.CleanupKind, repository string, r domain.DateRange) domain.CleanupReport {
	return domain.CleanupReport{
		RunID:      s.runID(),
		Kind:       kind,
		Repository: repository,
		Range:      r,
		DryRun:     s.opts.DryRun,
		StartedAt:  s.now(),
	}
}

// run deletes targets one at a time in order. A failed item never stops the
// loop; a done context does, leaving the remaining items unattempted.
func (s *Service) run(ctx context.Context, log *logger.Logger, noun string, report domain.CleanupReport, targets []target) domain.CleanupReport {
	if len(targets) == 0 {
		log.Info(fmt.Sprintf("No %ss found to delete in repository %s", noun, report.Repository))
		report.FinishedAt = s.now()
		return report
	}

	log.Info(fmt.Sprintf("Found %d %ss to delete", len(targets), noun),
		"repository", report.Repository, "range", report.Range.String(), "dry_run", s.opts.DryRun)

	for i, t := range targets {
		if s.opts.DryRun {
			log.Info(fmt.Sprintf("Dry run: would delete %s", noun), noun, t.reference, "created_on", t.createdOn)
			report.Items = append(report.Items, domain.CleanupItem{
				Reference: t.reference,
				CreatedOn: t.createdOn,
				Status:    domain.StatusSkippedDryRun,
			})
			continue
		}

		if err := s.wait(ctx, report.Repository); err != nil {
			log.Warn("Cleanup interrupted", "remaining", len(targets)-i, "err", err)
			break
		}
		report.Items = append(report.Items, s.deleteAndVerify(ctx, log, noun, report.Repository, t))
	}

	report.FinishedAt = s.now()
	log.Info(fmt.Sprintf("Deleted %d/%d %ss", report.Deleted(), len(targets), noun),
		"repository", report.Repository, "failed", report.Failed())
	return report
}

func (s *Service) wait(ctx context.Context, repository string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx, repository)
}

func (s *Service) deleteAndVerify(ctx context.Context, log *logger.Logger, noun, repository string, t target) domain.CleanupItem {
	item := domain.CleanupItem{
		Reference: t.reference,
		CreatedOn: t.createdOn,
	}

	if err := t.remove(ctx); err != nil {
		item.Error = err.Error()
	}

	if t.present(ctx) {
		item.Status = domain.StatusVerificationFailed
		log.Error(fmt.Sprintf("Failed to delete %s from repository %s", noun, repository), noun, t.reference)
		return item
	}

	item.Status = domain.StatusVerifiedAbsent
	log.Info(fmt.Sprintf("Successfully deleted %s from repository %s", noun, repository), noun, t.reference)
	return item
}
