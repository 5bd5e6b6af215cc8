// Package cli implements the CLI adapter for azops.
// This package provides Cobra commands that delegate to the app layer.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bnema/azops/internal/adapters/out/report"
	"github.com/bnema/azops/internal/app"
	"github.com/bnema/azops/internal/boundaries/in"
	"github.com/bnema/azops/internal/boundaries/out"
	"github.com/bnema/azops/internal/config"
	"github.com/bnema/azops/internal/domain"
	"github.com/bnema/azops/internal/usecase/cleanup"
	"github.com/bnema/azops/pkg/logger"
	"github.com/bnema/azops/pkg/version"
)

// Process exit codes.
const (
	ExitOK             = 0
	ExitError          = 1
	ExitDeletionFailed = 2
)

// serviceFactory builds the cleanup service once configuration is known.
type serviceFactory func(cfg *config.Config, opts cleanup.Options, log *logger.Logger) (in.CleanupService, error)

// deps holds the collaborators commands reach for at run time.
type deps struct {
	log             *logger.Logger
	newService      serviceFactory
	confirm         func(message string) (bool, error)
	interactive     func() bool
	newReportWriter func(path string) out.ReportWriter

	// cfg is populated by the root pre-run hook.
	cfg *config.Config
}

func defaultDeps() *deps {
	return &deps{
		log:         logger.GetLogger(),
		newService:  newAppService,
		confirm:     surveyConfirm,
		interactive: stdinIsTerminal,
		newReportWriter: func(path string) out.ReportWriter {
			return report.NewYAMLWriter(path)
		},
	}
}

func newAppService(cfg *config.Config, opts cleanup.Options, log *logger.Logger) (in.CleanupService, error) {
	a, err := app.New(cfg, log)
	if err != nil {
		return nil, err
	}
	return a.CleanupService(opts), nil
}

// flagBindings maps config keys to the flags that may override them.
var flagBindings = map[string]string{
	config.KeyACREndpoint:         "acr-endpoint",
	config.KeyACRCloud:            "cloud",
	config.KeyAuthMethod:          "auth-method",
	config.KeyLogLevel:            "log-level",
	config.KeyMaxDeletesPerSecond: "max-deletes-per-second",
}

// NewRootCmd creates the root command for the azops CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(d *deps) *cobra.Command {
	var (
		configPath string
		envFile    string
		logLevel   = newLevelValue("INFO")
	)

	rootCmd := &cobra.Command{
		Use:   "azops",
		Short: "azops - Azure operations toolbox",
		Long: `azops groups maintenance commands for Azure resources.

The acr commands delete container image tags and manifests created inside an
exclusive date range, then verify every deletion by fetching the item again.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return d.loadConfig(cmd, configPath, envFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is ./azops.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file loaded before credentials are resolved")
	rootCmd.PersistentFlags().Var(logLevel, "log-level", "log level: DEBUG, INFO, WARNING or ERROR")

	rootCmd.AddCommand(newACRCmd(d))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig applies --env-file, the config file, AZOPS_* variables and
// flag overrides, then sets the log level.
func (d *deps) loadConfig(cmd *cobra.Command, configPath, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("%w: env file %s: %w", domain.ErrConfigLoadFailed, envFile, err)
		}
		d.log.Debug("Loaded env file", "path", envFile)
	}

	loader := config.NewLoader()
	used, err := loader.ReadFile(configPath)
	if err != nil {
		return err
	}
	if used != "" {
		d.log.Debug("Using config file", "path", used)
	}

	for key, name := range flagBindings {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := loader.BindFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	d.log.SetLogLevel(cfg.Log.Level)
	d.cfg = cfg
	return nil
}

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd.OutOrStdout(), short)
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only version number")

	return cmd
}

func runVersion(out io.Writer, short bool) error {
	if short {
		return cliWriteLine(out, version.Version())
	}
	return cliWriteLine(out, version.Get())
}

// Execute runs the CLI with os.Args and returns the process exit code.
// SIGINT and SIGTERM cancel the running cleanup between items.
func Execute(build, commit, date string) int {
	version.Set(build, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := defaultDeps()
	d.log.ConfigureFromEnv()

	return exitCode(d.log, newRootCmd(d).ExecuteContext(ctx))
}

func exitCode(log *logger.Logger, err error) int {
	if err == nil {
		return ExitOK
	}
	log.Error(err.Error())
	if errors.Is(err, domain.ErrDeletionsFailed) {
		return ExitDeletionFailed
	}
	return ExitError
}
