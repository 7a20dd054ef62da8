// Package config loads adminctl configuration from the environment and an
// optional config file using Viper.
package config

import (
	goerrors "errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/authway/adminctl/internal/errors"
)

// DefaultAPIURL is the backend origin used when nothing else is configured.
const DefaultAPIURL = "http://localhost:8000"

// Config holds adminctl configuration.
//
// The backend origin is the only externally required setting; everything else
// has working defaults.
type Config struct {
	// APIURL is the base URL of the Authway backend.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`

	// Timeout bounds every backend request.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// StateDir is where session state and the machine secret live.
	StateDir string `mapstructure:"state_dir" yaml:"state_dir"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// DefaultStateDir returns the default state directory (~/.authway).
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".authway"
	}
	return filepath.Join(home, ".authway")
}

// FilePath returns the default config file location inside the state dir.
func FilePath(stateDir string) string {
	return filepath.Join(stateDir, "config.yaml")
}

// Load builds Config from defaults, the optional config file, and environment
// variables (AUTHWAY_ prefix). Env vars override file values; a missing config
// file is not an error.
func Load() (*Config, error) {
	return load(DefaultStateDir())
}

func load(stateDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", "30s")
	v.SetDefault("state_dir", stateDir)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")

	v.SetConfigFile(FilePath(stateDir))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !goerrors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errors.NewConfigLoadError(err)
		}
	}

	v.SetEnvPrefix("AUTHWAY")
	v.AutomaticEnv()
	// AUTHWAY_API_URL is the documented base-URL variable.
	_ = v.BindEnv("api_url", "AUTHWAY_API_URL")
	_ = v.BindEnv("timeout", "AUTHWAY_TIMEOUT")
	_ = v.BindEnv("state_dir", "AUTHWAY_STATE_DIR")
	_ = v.BindEnv("log_level", "AUTHWAY_LOG_LEVEL")
	_ = v.BindEnv("log_format", "AUTHWAY_LOG_FORMAT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigLoadError(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "api_url must be set").
			WithSuggestion("Set AUTHWAY_API_URL or api_url in the config file")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("api_url %q is not a valid absolute URL", c.APIURL)).
			WithSuggestion("Use a full origin like https://auth.example.com")
	}
	if c.Timeout <= 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "timeout must be positive")
	}
	return nil
}

// WriteDefault writes a commented default config file into stateDir.
// Existing files are left untouched.
func WriteDefault(stateDir string) (string, error) {
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigWriteFailed, "cannot create state directory", err)
	}

	path := FilePath(stateDir)
	if _, err := os.Stat(path); err == nil {
		return path, errors.New(errors.ErrCodeConfigWriteFailed,
			fmt.Sprintf("config file already exists: %s", path)).
			WithSuggestion("Edit the existing file instead")
	}

	cfg := Config{
		APIURL:    DefaultAPIURL,
		Timeout:   30 * time.Second,
		StateDir:  stateDir,
		LogLevel:  "warn",
		LogFormat: "text",
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigWriteFailed, "cannot encode default config", err)
	}

	header := "# adminctl configuration. Environment variables (AUTHWAY_*) override these values.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o600); err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigWriteFailed, "cannot write config file", err)
	}

	return path, nil
}
