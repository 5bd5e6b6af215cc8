// Package app wires the adapters and use cases from a loaded configuration.
package app

import (
	"github.com/bnema/azops/internal/adapters/out/acr"
	"github.com/bnema/azops/internal/adapters/out/credential"
	"github.com/bnema/azops/internal/adapters/out/ratelimit"
	"github.com/bnema/azops/internal/boundaries/in"
	"github.com/bnema/azops/internal/boundaries/out"
	"github.com/bnema/azops/internal/config"
	"github.com/bnema/azops/internal/usecase/cleanup"
	"github.com/bnema/azops/pkg/logger"
)

// App holds the process-wide registry client and limiter.
type App struct {
	registry *acr.Client
	limiter  out.DeletionLimiter
	log      *logger.Logger
}

// New builds the credential, registry client and limiter described by cfg.
// Credential and configuration errors surface here, before any registry call.
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	cloudCfg, err := credential.Cloud(cfg.ACR.Cloud)
	if err != nil {
		return nil, err
	}

	cred, err := credential.New(cfg.Auth.Method, cloudCfg, log)
	if err != nil {
		return nil, err
	}

	registry, err := acr.NewClient(cfg.ACR.Endpoint, cred, acr.Options{Cloud: cloudCfg}, log)
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.NewMemoryStore(cfg.Cleanup.MaxDeletesPerSecond, 1, log)

	log.Debug("Application wired",
		"endpoint", registry.Endpoint(),
		"auth_method", cfg.Auth.Method,
		"cloud", cfg.ACR.Cloud,
		"max_deletes_per_second", cfg.Cleanup.MaxDeletesPerSecond,
	)

	return &App{
		registry: registry,
		limiter:  limiter,
		log:      log,
	}, nil
}

// Endpoint returns the normalized registry endpoint.
func (a *App) Endpoint() string {
	return a.registry.Endpoint()
}

// CleanupService returns a cleanup service bound to the registry.
func (a *App) CleanupService(opts cleanup.Options) in.CleanupService {
	return cleanup.NewService(a.registry, a.limiter, opts, a.log)
}
