package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bnema/azops/internal/domain"
)

func sampleReport() domain.CleanupReport {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return domain.CleanupReport{
		RunID:      "3f2b8c1e-0000-4000-8000-000000000001",
		Kind:       domain.CleanupKindTags,
		Repository: "app",
		Range: domain.DateRange{
			Start: &start,
			End:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		Items: []domain.CleanupItem{
			{Reference: "B", CreatedOn: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), Status: domain.StatusVerifiedAbsent},
			{Reference: "D", CreatedOn: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), Status: domain.StatusVerificationFailed, Error: "forbidden"},
		},
		StartedAt:  time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 3, 2, 10, 0, 5, 0, time.UTC),
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleReport()))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "tags", doc["kind"])
	assert.Equal(t, "app", doc["repository"])
	assert.Equal(t, false, doc["dry_run"])

	rng := doc["range"].(map[string]interface{})
	assert.Equal(t, "2025-01-01", rng["start_exclusive"])
	assert.Equal(t, "2025-03-01", rng["end_exclusive"])

	summary := doc["summary"].(map[string]interface{})
	assert.Equal(t, 2, summary["candidates"])
	assert.Equal(t, 1, summary["deleted"])
	assert.Equal(t, 1, summary["failed"])

	items := doc["items"].([]interface{})
	require.Len(t, items, 2)
	failed := items[1].(map[string]interface{})
	assert.Equal(t, "D", failed["reference"])
	assert.Equal(t, "verification-failed", failed["status"])
	assert.Equal(t, "forbidden", failed["error"])
	assert.NotContains(t, items[0].(map[string]interface{}), "error")
}

func TestEncode_NoStartDate(t *testing.T) {
	report := sampleReport()
	report.Range.Start = nil
	report.Items = nil

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, report))

	assert.NotContains(t, buf.String(), "start_exclusive")
	assert.Contains(t, buf.String(), "items: []")
}

func TestYAMLWriter_WriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "cleanup.yaml")
	w := NewYAMLWriter(path)

	require.NoError(t, w.WriteReport(sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "run_id: 3f2b8c1e-0000-4000-8000-000000000001")
	assert.Contains(t, string(data), "status: verified-absent")
}

func TestYAMLWriter_WriteReport_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stale: true\n"), 0o644))

	require.NoError(t, NewYAMLWriter(path).WriteReport(sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestYAMLWriter_WriteReport_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := NewYAMLWriter(filepath.Join(blocker, "cleanup.yaml")).WriteReport(sampleReport())

	assert.Error(t, err)
}
