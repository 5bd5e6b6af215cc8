package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/bnema/azops/internal/domain"
)

var cliWriteLine = func(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

var (
	cliSuccess = color.New(color.FgGreen, color.Bold)
	cliWarning = color.New(color.FgYellow)
	cliFailure = color.New(color.FgRed, color.Bold)
)

// writeSummary prints the one-line outcome of a cleanup run.
func writeSummary(w io.Writer, r domain.CleanupReport) error {
	switch {
	case r.DryRun:
		return cliWriteLine(w, cliWarning.Sprintf("Dry run: %d %s would be deleted from %s", r.Candidates(), r.Kind, r.Repository))
	case r.HasFailures():
		return cliWriteLine(w, cliFailure.Sprintf("Deleted %d/%d %s from %s (%d still present)", r.Deleted(), r.Candidates(), r.Kind, r.Repository, r.Failed()))
	default:
		return cliWriteLine(w, cliSuccess.Sprintf("Deleted %d/%d %s from %s", r.Deleted(), r.Candidates(), r.Kind, r.Repository))
	}
}
