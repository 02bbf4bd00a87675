package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultInterval is how often a progress bar redraws unless configured otherwise.
const DefaultInterval = 100 * time.Millisecond

// Config represents smtprogress configuration options
type Config struct {
	// Name is the label drawn in front of the bar
	Name string `yaml:"name"`

	// Interval is the delay between redraws
	Interval time.Duration `yaml:"interval"`

	// Lanes is the number of counter slots (0 = GOMAXPROCS)
	Lanes int `yaml:"lanes"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Quiet suppresses the bar regardless of SMT_QUIET
	Quiet bool `yaml:"quiet"`
}

// yamlConfig mirrors Config with the interval kept as a duration string.
type yamlConfig struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval"`
	Lanes    int    `yaml:"lanes"`
	LogLevel string `yaml:"log_level"`
	Quiet    bool   `yaml:"quiet"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Name:     "Progress",
		Interval: DefaultInterval,
		Lanes:    0,
		LogLevel: "info",
		Quiet:    false,
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Name != "" {
		cfg.Name = yamlCfg.Name
	}
	if yamlCfg.Interval != "" {
		interval, err := time.ParseDuration(yamlCfg.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid interval format %q: %w", yamlCfg.Interval, err)
		}
		cfg.Interval = interval
	}
	if yamlCfg.Lanes != 0 {
		cfg.Lanes = yamlCfg.Lanes
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Quiet {
		cfg.Quiet = true
	}

	return cfg, nil
}

// ConfigPath returns the location of the config file inside dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ".smtprogress", "config.yaml")
}

// LoadConfigFromDir loads configuration from .smtprogress/config.yaml in dir
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(ConfigPath(dir))
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(name *string, interval *time.Duration, lanes *int, logLevel *string, quiet *bool) {
	if name != nil {
		c.Name = *name
	}
	if interval != nil {
		c.Interval = *interval
	}
	if lanes != nil {
		c.Lanes = *lanes
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if quiet != nil {
		c.Quiet = *quiet
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be > 0, got %v", c.Interval)
	}
	if c.Lanes < 0 {
		return fmt.Errorf("lanes must be >= 0, got %d", c.Lanes)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// Marshal encodes the configuration in the same YAML layout LoadConfig reads.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(yamlConfig{
		Name:     c.Name,
		Interval: c.Interval.String(),
		Lanes:    c.Lanes,
		LogLevel: c.LogLevel,
		Quiet:    c.Quiet,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
