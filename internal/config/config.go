// Package config loads azops settings from defaults, a config file,
// AZOPS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bnema/azops/internal/domain"
	"github.com/bnema/azops/pkg/logger"
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "AZOPS"

// Keys understood by the loader.
const (
	KeyACREndpoint         = "acr.endpoint"
	KeyACRCloud            = "acr.cloud"
	KeyAuthMethod          = "auth.method"
	KeyLogLevel            = "log.level"
	KeyMaxDeletesPerSecond = "cleanup.max_deletes_per_second"
)

// Clouds lists the accepted cloud names.
var Clouds = []string{"AzurePublic", "AzureChina", "AzureGovernment"}

type Config struct {
	ACR     ACRConfig     `mapstructure:"acr"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
	Cleanup CleanupConfig `mapstructure:"cleanup"`
}

type ACRConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Cloud    string `mapstructure:"cloud"`
}

type AuthConfig struct {
	Method string `mapstructure:"method"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CleanupConfig struct {
	// MaxDeletesPerSecond paces delete calls. Zero means unlimited.
	MaxDeletesPerSecond float64 `mapstructure:"max_deletes_per_second"`
}

// Loader resolves a Config. Precedence: flags > env > config file > defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with defaults and environment binding applied.
func NewLoader() *Loader {
	v := viper.New()
	v.SetDefault(KeyACREndpoint, "")
	v.SetDefault(KeyACRCloud, "AzurePublic")
	v.SetDefault(KeyAuthMethod, string(domain.AuthMethodEnvironment))
	v.SetDefault(KeyLogLevel, "INFO")
	v.SetDefault(KeyMaxDeletesPerSecond, 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// BindFlag makes flag override key when set on the command line.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("%w: no flag to bind for %s", domain.ErrInvalidConfig, key)
	}
	return l.v.BindPFlag(key, flag)
}

// ReadFile reads the config file at path. With an empty path the standard
// locations are searched for azops.yaml and a missing file is not an error.
// It returns the file actually used, if any.
func (l *Loader) ReadFile(path string) (string, error) {
	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("azops")
		l.v.SetConfigType("yaml")

		// Current directory (highest priority)
		l.v.AddConfigPath(".")

		if userConfigDir, err := os.UserConfigDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(userConfigDir, "azops"))
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(homeDir, ".azops"))
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", domain.ErrConfigLoadFailed, err)
	}
	return l.v.ConfigFileUsed(), nil
}

// Load decodes the merged settings into a Config. It does not validate.
func (l *Loader) Load() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfigLoadFailed, err)
	}
	return &cfg, nil
}

// Validate checks the settings needed before any registry call.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.ACR.Endpoint) == "" {
		errs = append(errs, fmt.Errorf("acr endpoint is required (--acr-endpoint or %s_ACR_ENDPOINT)", EnvPrefix))
	}
	if !validCloud(c.ACR.Cloud) {
		errs = append(errs, fmt.Errorf("cloud must be one of: %s", strings.Join(Clouds, ", ")))
	}
	if _, err := domain.ParseAuthMethod(c.Auth.Method); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Cleanup.MaxDeletesPerSecond < 0 {
		errs = append(errs, fmt.Errorf("max deletes per second must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func validCloud(name string) bool {
	for _, c := range Clouds {
		if strings.EqualFold(strings.TrimSpace(name), c) {
			return true
		}
	}
	return false
}
