package domain

import (
	"fmt"
	"time"
)

// DateLayout is the layout accepted for cleanup date bounds.
const DateLayout = "2006-01-02"

// TagProperties is a snapshot of a tag as reported by the registry.
type TagProperties struct {
	Repository    string
	Name          string
	Digest        string
	CreatedOn     time.Time
	LastUpdatedOn time.Time
}

// ManifestProperties is a snapshot of a manifest as reported by the registry.
type ManifestProperties struct {
	Repository    string
	Digest        string
	Tags          []string
	MediaType     string
	Size          int64
	CreatedOn     time.Time
	LastUpdatedOn time.Time
}

// DateRange is an open interval (Start, End). A nil Start means no lower bound.
// Start is expected to be before End; this is not enforced.
type DateRange struct {
	Start *time.Time
	End   time.Time
}

// Contains reports whether t lies strictly inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !t.Before(r.End) {
		return false
	}
	if r.Start != nil && !t.After(*r.Start) {
		return false
	}
	return true
}

func (r DateRange) String() string {
	start := "-inf"
	if r.Start != nil {
		start = r.Start.Format(DateLayout)
	}
	return fmt.Sprintf("(%s, %s)", start, r.End.Format(DateLayout))
}
