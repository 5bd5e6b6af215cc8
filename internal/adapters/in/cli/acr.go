package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/azops/internal/config"
	"github.com/bnema/azops/internal/domain"
	"github.com/bnema/azops/internal/usecase/cleanup"
	"github.com/bnema/azops/pkg/validation"
)

type cleanupOptions struct {
	Repository   string
	Start        dateValue
	End          dateValue
	DryRun       bool
	Yes          bool
	KeepReleases bool
	Report       string
	Strict       bool
}

func (o *cleanupOptions) dateRange() domain.DateRange {
	return domain.DateRange{
		Start: o.Start.Ptr(),
		End:   o.End.t,
	}
}

func newACRCmd(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acr",
		Short: "Azure Container Registry operations",
		Long: `Clean up tags and manifests of an Azure Container Registry repository.

Credentials are resolved with the selected azidentity method. The default,
EnvironmentCredential, reads AZURE_TENANT_ID, AZURE_CLIENT_ID and
AZURE_CLIENT_SECRET (or the certificate and username/password variants).`,
	}

	cmd.PersistentFlags().String("acr-endpoint", "", "registry endpoint, e.g. https://myregistry.azurecr.io (or AZOPS_ACR_ENDPOINT)")
	cmd.PersistentFlags().String("auth-method", string(domain.AuthMethodEnvironment), "credential source: "+authMethodNames())
	cmd.PersistentFlags().String("cloud", "AzurePublic", "Azure cloud: "+strings.Join(config.Clouds, ", "))

	cmd.AddCommand(newCleanupCmd(d, domain.CleanupKindTags))
	cmd.AddCommand(newCleanupCmd(d, domain.CleanupKindManifests))

	return cmd
}

func newCleanupCmd(d *deps, kind domain.CleanupKind) *cobra.Command {
	var opts cleanupOptions

	cmd := &cobra.Command{
		Use:   "cleanup-" + string(kind),
		Short: fmt.Sprintf("Delete %s created inside a date range", kind),
		Long: fmt.Sprintf(`Delete the %[1]s of a repository whose creation date lies strictly
between --start-date and --end-date. Both bounds are exclusive and dates are
read as UTC midnight. Without --start-date every %[1]s created before
--end-date is selected.`, kind),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runCleanup(cmd.Context(), d, kind, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Repository, "repo", "", "repository to clean up")
	cmd.Flags().Var(&opts.Start, "start-date", "exclusive lower bound (YYYY-MM-DD)")
	cmd.Flags().Var(&opts.End, "end-date", "exclusive upper bound (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "show what would be deleted without deleting")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().Float64("max-deletes-per-second", 0, "pace delete calls (0 means unlimited)")
	cmd.Flags().StringVar(&opts.Report, "report", "", "write a YAML report of the run to this path")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit with code 2 when a deletion cannot be verified")
	if kind == domain.CleanupKindTags {
		cmd.Flags().BoolVar(&opts.KeepReleases, "keep-releases", false, "never delete release tags such as 1.2.3 or v1.2.3")
	}

	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("end-date")

	return cmd
}

func runCleanup(ctx context.Context, d *deps, kind domain.CleanupKind, opts cleanupOptions, out io.Writer) error {
	if d.cfg == nil {
		return fmt.Errorf("%w: configuration not loaded", domain.ErrInvalidConfig)
	}
	if err := d.cfg.Validate(); err != nil {
		return err
	}
	if err := validation.ValidateRepositoryName(opts.Repository); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	r := opts.dateRange()
	svc, err := d.newService(d.cfg, cleanup.Options{
		DryRun:       opts.DryRun,
		KeepReleases: opts.KeepReleases,
	}, d.log)
	if err != nil {
		return err
	}

	if !opts.DryRun && !opts.Yes && d.interactive() {
		ok, err := d.confirm(fmt.Sprintf("Delete %s of %s created in %s?", kind, opts.Repository, r))
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			d.log.Warn("Cleanup aborted by user", "repository", opts.Repository)
			return nil
		}
	}

	var result domain.CleanupReport
	switch kind {
	case domain.CleanupKindTags:
		result = svc.CleanupTags(ctx, opts.Repository, r)
	case domain.CleanupKindManifests:
		result = svc.CleanupManifests(ctx, opts.Repository, r)
	default:
		return fmt.Errorf("unknown cleanup kind %q", kind)
	}

	if err := writeSummary(out, result); err != nil {
		return err
	}

	if opts.Report != "" {
		if err := d.newReportWriter(opts.Report).WriteReport(result); err != nil {
			return err
		}
		d.log.Info("Report written", "path", opts.Report)
	}

	if opts.Strict && result.HasFailures() {
		return fmt.Errorf("%w: %d of %d %s still present in %s",
			domain.ErrDeletionsFailed, result.Failed(), result.Candidates(), kind, result.Repository)
	}
	return nil
}

func authMethodNames() string {
	names := make([]string, 0, len(domain.AuthMethods))
	for _, m := range domain.AuthMethods {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
