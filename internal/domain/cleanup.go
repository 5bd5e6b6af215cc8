package domain

import "time"

// CleanupKind identifies the artifact type a cleanup run targets.
type CleanupKind string

const (
	CleanupKindTags      CleanupKind = "tags"
	CleanupKindManifests CleanupKind = "manifests"
)

// CleanupStatus is the terminal state of one item in a cleanup run.
type CleanupStatus string

const (
	// StatusVerifiedAbsent means the item was deleted and a re-fetch found nothing.
	StatusVerifiedAbsent CleanupStatus = "verified-absent"
	// StatusVerificationFailed means the item was still present after the delete.
	StatusVerificationFailed CleanupStatus = "verification-failed"
	// StatusSkippedDryRun means the item matched but no delete was issued.
	StatusSkippedDryRun CleanupStatus = "skipped-dry-run"
)

// CleanupItem records what happened to a single tag or manifest.
type CleanupItem struct {
	// Reference is the tag name or the manifest digest.
	Reference string
	CreatedOn time.Time
	Status    CleanupStatus
	// Error holds the delete call error, if any. A failed delete whose
	// item is nevertheless gone still ends as StatusVerifiedAbsent.
	Error string
}

// CleanupReport aggregates the outcome of one cleanup run.
type CleanupReport struct {
	RunID      string
	Kind       CleanupKind
	Repository string
	Range      DateRange
	DryRun     bool
	Items      []CleanupItem
	StartedAt  time.Time
	FinishedAt time.Time
}

// Candidates is the number of items selected by the date filter.
func (r CleanupReport) Candidates() int {
	return len(r.Items)
}

// Deleted counts items verified absent after deletion.
func (r CleanupReport) Deleted() int {
	return r.count(StatusVerifiedAbsent)
}

// Failed counts items still present after deletion.
func (r CleanupReport) Failed() int {
	return r.count(StatusVerificationFailed)
}

// HasFailures reports whether any deletion could not be verified.
func (r CleanupReport) HasFailures() bool {
	return r.Failed() > 0
}

func (r CleanupReport) count(status CleanupStatus) int {
	n := 0
	for _, item := range r.Items {
		if item.Status == status {
			n++
		}
	}
	return n
}
