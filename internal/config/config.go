package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/rshade/reviewdeck/internal/logging"
)

// Environment variables that override the configuration file.
const (
	EnvHome      = "REVIEWDECK_HOME"
	EnvLogLevel  = "REVIEWDECK_LOG_LEVEL"
	EnvLogFormat = "REVIEWDECK_LOG_FORMAT"
	EnvFixtures  = "REVIEWDECK_FIXTURES"
	EnvCacheTTL  = "REVIEWDECK_CACHE_TTL"
)

// CurrentVersion is written into new configuration files.
const CurrentVersion = "1.0.0"

// versionConstraint is the configuration schema versions this build reads.
const versionConstraint = "^1"

// configFileName is the configuration file inside the config directory.
const configFileName = "config.yaml"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the reviewdeck configuration file.
type Config struct {
	Version    string           `yaml:"version"`
	Logging    LoggingConfig    `yaml:"logging"`
	Capability CapabilityConfig `yaml:"capability"`
	Loader     LoaderConfig     `yaml:"loader"`
	Stub       StubConfig       `yaml:"stub"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
	Caller bool   `yaml:"caller,omitempty"`
}

// CapabilityConfig controls the decorators applied to the review capability.
type CapabilityConfig struct {
	// ShareInflight collapses concurrent fetches of the same review into one call.
	ShareInflight bool `yaml:"share_inflight"`
	// CacheTTL memoizes fetched reviews; zero disables caching.
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// LoaderConfig controls loader behavior.
type LoaderConfig struct {
	// ShowErrors renders fetch failures instead of keeping the placeholder.
	ShowErrors bool `yaml:"show_errors"`
}

// StubConfig configures the in-memory review capability.
type StubConfig struct {
	Fixtures     string        `yaml:"fixtures,omitempty"`
	DefaultDelay time.Duration `yaml:"default_delay"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Capability: CapabilityConfig{
			ShareInflight: true,
		},
		Stub: StubConfig{
			DefaultDelay: 300 * time.Millisecond,
		},
	}
}

// New returns the default configuration overlaid with the config file in the config
// directory, if there is one, and with environment overrides.
func New() *Config {
	cfg := Default()
	if path, err := ConfigFilePath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			// A broken file leaves the defaults in place; config validate reports it.
			_ = cfg.Load(path)
		}
	}
	cfg.ApplyEnv()
	return cfg
}

// Load reads path onto c.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Save writes c to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv applies environment variable overrides. Invalid values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvFixtures); v != "" {
		c.Stub.Fixtures = v
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		if ttl, err := ParseTTL(v); err == nil {
			c.Capability.CacheTTL = ttl
		}
	}
}

// Validate reports every problem in c at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := checkVersion(c.Version); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := zerologLevel(c.Logging.Level); err != nil {
		result = multierror.Append(result, err)
	}
	switch c.Logging.Format {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		result = multierror.Append(result, fmt.Errorf("logging.format must be %q or %q, got %q",
			logging.FormatJSON, logging.FormatConsole, c.Logging.Format))
	}
	if err := ValidateTTL(c.Capability.CacheTTL); err != nil {
		result = multierror.Append(result, fmt.Errorf("capability.cache_ttl: %w", err))
	}
	if c.Stub.DefaultDelay < 0 {
		result = multierror.Append(result, fmt.Errorf("stub.default_delay must be >= 0, got %s", c.Stub.DefaultDelay))
	}
	if c.Stub.Fixtures != "" {
		if _, err := os.Stat(c.Stub.Fixtures); err != nil {
			result = multierror.Append(result, fmt.Errorf("stub.fixtures: %w", err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("version %q is not valid semver: %w", v, err)
	}
	constraint, err := semver.NewConstraint(versionConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("config version %s is not supported (want %s)", v, versionConstraint)
	}
	return nil
}
