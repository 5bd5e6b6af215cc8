package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/azops/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "azops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.ACR.Endpoint)
	assert.Equal(t, "AzurePublic", cfg.ACR.Cloud)
	assert.Equal(t, "EnvironmentCredential", cfg.Auth.Method)
	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.Equal(t, float64(0), cfg.Cleanup.MaxDeletesPerSecond)
}

func TestLoader_ReadFile(t *testing.T) {
	path := writeConfig(t, `
acr:
  endpoint: myregistry.azurecr.io
  cloud: AzureChina
auth:
  method: AzureCLICredential
log:
  level: debug
cleanup:
  max_deletes_per_second: 2.5
`)
	l := NewLoader()

	used, err := l.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "myregistry.azurecr.io", cfg.ACR.Endpoint)
	assert.Equal(t, "AzureChina", cfg.ACR.Cloud)
	assert.Equal(t, "AzureCLICredential", cfg.Auth.Method)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2.5, cfg.Cleanup.MaxDeletesPerSecond)
}

func TestLoader_ReadFile_ExplicitMissingFile(t *testing.T) {
	_, err := NewLoader().ReadFile(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigLoadFailed)
}

func TestLoader_ReadFile_SearchWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	used, err := NewLoader().ReadFile("")

	require.NoError(t, err)
	assert.Empty(t, used)
}

func TestLoader_ReadFile_SearchCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "azops.yaml"), []byte("acr:\n  endpoint: cwd.azurecr.io\n"), 0o644))
	t.Chdir(dir)

	l := NewLoader()
	used, err := l.ReadFile("")
	require.NoError(t, err)
	assert.NotEmpty(t, used)

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "cwd.azurecr.io", cfg.ACR.Endpoint)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "acr:\n  endpoint: file.azurecr.io\n")
	t.Setenv("AZOPS_ACR_ENDPOINT", "env.azurecr.io")
	t.Setenv("AZOPS_CLEANUP_MAX_DELETES_PER_SECOND", "4")

	l := NewLoader()
	_, err := l.ReadFile(path)
	require.NoError(t, err)

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "env.azurecr.io", cfg.ACR.Endpoint)
	assert.Equal(t, float64(4), cfg.Cleanup.MaxDeletesPerSecond)
}

func TestLoader_FlagOverridesEnv(t *testing.T) {
	t.Setenv("AZOPS_ACR_ENDPOINT", "env.azurecr.io")
	t.Setenv("AZOPS_AUTH_METHOD", "AzureCLICredential")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("acr-endpoint", "", "")
	fs.String("auth-method", "EnvironmentCredential", "")
	require.NoError(t, fs.Parse([]string{"--acr-endpoint", "flag.azurecr.io"}))

	l := NewLoader()
	require.NoError(t, l.BindFlag(KeyACREndpoint, fs.Lookup("acr-endpoint")))
	require.NoError(t, l.BindFlag(KeyAuthMethod, fs.Lookup("auth-method")))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "flag.azurecr.io", cfg.ACR.Endpoint)
	// Unset flag does not shadow the environment.
	assert.Equal(t, "AzureCLICredential", cfg.Auth.Method)
}

func TestLoader_BindFlag_Nil(t *testing.T) {
	err := NewLoader().BindFlag(KeyLogLevel, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			ACR:  ACRConfig{Endpoint: "myregistry.azurecr.io", Cloud: "AzurePublic"},
			Auth: AuthConfig{Method: "EnvironmentCredential"},
			Log:  LogConfig{Level: "INFO"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "cloud case-insensitive", mutate: func(c *Config) { c.ACR.Cloud = "azuregovernment" }},
		{name: "missing endpoint", mutate: func(c *Config) { c.ACR.Endpoint = " " }, wantErr: "acr endpoint is required"},
		{name: "bad cloud", mutate: func(c *Config) { c.ACR.Cloud = "Mars" }, wantErr: "cloud must be one of"},
		{name: "bad auth method", mutate: func(c *Config) { c.Auth.Method = "Password" }, wantErr: "unsupported auth method"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "TRACE" }, wantErr: "invalid log level"},
		{name: "negative rate", mutate: func(c *Config) { c.Cleanup.MaxDeletesPerSecond = -1 }, wantErr: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
