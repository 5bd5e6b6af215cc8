package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanupReport_Counts(t *testing.T) {
	report := CleanupReport{
		Items: []CleanupItem{
			{Reference: "a", Status: StatusVerifiedAbsent},
			{Reference: "b", Status: StatusVerificationFailed},
			{Reference: "c", Status: StatusVerifiedAbsent},
		},
	}

	assert.Equal(t, 3, report.Candidates())
	assert.Equal(t, 2, report.Deleted())
	assert.Equal(t, 1, report.Failed())
	assert.True(t, report.HasFailures())
}

func TestCleanupReport_DryRunHasNoFailures(t *testing.T) {
	report := CleanupReport{
		DryRun: true,
		Items: []CleanupItem{
			{Reference: "a", Status: StatusSkippedDryRun},
			{Reference: "b", Status: StatusSkippedDryRun},
		},
	}

	assert.Equal(t, 2, report.Candidates())
	assert.Equal(t, 0, report.Deleted())
	assert.False(t, report.HasFailures())
}

func TestCleanupReport_Empty(t *testing.T) {
	var report CleanupReport

	assert.Zero(t, report.Candidates())
	assert.False(t, report.HasFailures())
}
