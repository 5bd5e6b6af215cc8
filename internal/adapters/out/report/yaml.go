// Package report persists cleanup reports.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bnema/azops/internal/boundaries/out"
	"github.com/bnema/azops/internal/domain"
)

// Ensure YAMLWriter implements out.ReportWriter.
var _ out.ReportWriter = (*YAMLWriter)(nil)

// YAMLWriter writes cleanup reports as YAML documents to a file.
type YAMLWriter struct {
	path string
}

// NewYAMLWriter creates a writer targeting path. Parent directories are
// created on write.
func NewYAMLWriter(path string) *YAMLWriter {
	return &YAMLWriter{path: path}
}

// WriteReport writes report to the configured path, replacing any existing file.
func (w *YAMLWriter) WriteReport(report domain.CleanupReport) error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, report); err != nil {
		return err
	}
	return f.Close()
}

// Encode writes report as YAML to w.
func Encode(w io.Writer, report domain.CleanupReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(report)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

type document struct {
	RunID      string     `yaml:"run_id"`
	Kind       string     `yaml:"kind"`
	Repository string     `yaml:"repository"`
	Range      rangeDoc   `yaml:"range"`
	DryRun     bool       `yaml:"dry_run"`
	StartedAt  time.Time  `yaml:"started_at"`
	FinishedAt time.Time  `yaml:"finished_at"`
	Summary    summaryDoc `yaml:"summary"`
	Items      []itemDoc  `yaml:"items"`
}

type rangeDoc struct {
	Start string `yaml:"start_exclusive,omitempty"`
	End   string `yaml:"end_exclusive"`
}

type summaryDoc struct {
	Candidates int `yaml:"candidates"`
	Deleted    int `yaml:"deleted"`
	Failed     int `yaml:"failed"`
}

type itemDoc struct {
	Reference string    `yaml:"reference"`
	CreatedOn time.Time `yaml:"created_on"`
	Status    string    `yaml:"status"`
	Error     string    `yaml:"error,omitempty"`
}

func toDocument(report domain.CleanupReport) document {
	doc := document{
		RunID:      report.RunID,
		Kind:       string(report.Kind),
		Repository: report.Repository,
		Range:      rangeDoc{End: report.Range.End.Format(domain.DateLayout)},
		DryRun:     report.DryRun,
		StartedAt:  report.StartedAt.UTC(),
		FinishedAt: report.FinishedAt.UTC(),
		Summary: summaryDoc{
			Candidates: report.Candidates(),
			Deleted:    report.Deleted(),
			Failed:     report.Failed(),
		},
		Items: make([]itemDoc, 0, len(report.Items)),
	}
	if report.Range.Start != nil {
		doc.Range.Start = report.Range.Start.Format(domain.DateLayout)
	}
	for _, item := range report.Items {
		doc.Items = append(doc.Items, itemDoc{
			Reference: item.Reference,
			CreatedOn: item.CreatedOn.UTC(),
			Status:    string(item.Status),
			Error:     item.Error,
		})
	}
	return doc
}
