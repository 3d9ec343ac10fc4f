// Package config loads garmentlca settings from ~/.garmentlca/config.yaml,
// an optional project overlay and GARMENTLCA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/garmentlca/internal/logging"
	"github.com/rshade/garmentlca/internal/scenario"
)

// Output formats accepted by output.default_format and --output.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Environment variables that override file settings.
const (
	EnvHome         = "GARMENTLCA_HOME"
	EnvProjectDir   = "GARMENTLCA_PROJECT_DIR"
	EnvLogLevel     = "GARMENTLCA_LOG_LEVEL"
	EnvOutputFormat = "GARMENTLCA_OUTPUT_FORMAT"
	EnvCatalog      = "GARMENTLCA_CATALOG"
)

// Defaults.
const (
	DefaultHorizon           = scenario.MaxUsageCount
	DefaultUsageCount        = scenario.DefaultUsageCount
	DefaultWaterPrecision    = 0
	DefaultCarbonPrecision   = 1
	MaxPrecision             = 6
	configFileName           = "config.yaml"
	configFilePermissions    = 0o600
	configDirPermissions     = 0o700
	defaultLoggingLevel      = "warn"
	defaultLoggingFormat     = logging.FormatConsole
	defaultOutputFormatValue = FormatTable
)

// ValidOutputFormats lists the accepted output formats.
func ValidOutputFormats() []string {
	return []string{FormatTable, FormatJSON, FormatNDJSON}
}

// Config is the full garmentlca configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Model   ModelConfig   `yaml:"model"   json:"model"`

	configPath string
	loadErr    error
}

// OutputConfig controls rendering.
type OutputConfig struct {
	DefaultFormat   string `yaml:"default_format"   json:"default_format"`
	WaterPrecision  int    `yaml:"water_precision"  json:"water_precision"`
	CarbonPrecision int    `yaml:"carbon_precision" json:"carbon_precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// ModelConfig controls the footprint model.
type ModelConfig struct {
	// CatalogPath names a catalog YAML file; empty uses the built-in one.
	CatalogPath string `yaml:"catalog_path,omitempty" json:"catalog_path,omitempty"`

	// Horizon is the number of washes projections cover.
	Horizon int `yaml:"horizon" json:"horizon"`

	// DefaultUsageCount is the wash count used when none is given.
	DefaultUsageCount int `yaml:"default_usage_count" json:"default_usage_count"`

	// MaxUsageCount bounds the wash count; it may not exceed Horizon.
	MaxUsageCount int `yaml:"max_usage_count" json:"max_usage_count"`
}

// UsageLimit returns the largest wash count the model accepts: MaxUsageCount
// capped at Horizon. Values below 1 fall back to the built-in bounds.
func (m ModelConfig) UsageLimit() int {
	horizon := m.Horizon
	if horizon < 1 {
		horizon = DefaultHorizon
	}
	limit := m.MaxUsageCount
	if limit < 1 || limit > horizon {
		limit = horizon
	}
	return limit
}

// UsageDefault returns DefaultUsageCount clamped to [1, UsageLimit].
func (m ModelConfig) UsageDefault() int {
	n := m.DefaultUsageCount
	if n < 1 {
		n = DefaultUsageCount
	}
	n, _ = scenario.ClampUsageCount(n, m.UsageLimit())
	return n
}

// Defaults returns a Config holding only built-in defaults.
func Defaults() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat:   defaultOutputFormatValue,
			WaterPrecision:  DefaultWaterPrecision,
			CarbonPrecision: DefaultCarbonPrecision,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
		Model: ModelConfig{
			Horizon:           DefaultHorizon,
			DefaultUsageCount: DefaultUsageCount,
			MaxUsageCount:     DefaultHorizon,
		},
	}
}

// New returns the defaults overlaid with the global config file, if any,
// and environment overrides. A malformed file leaves the defaults in place;
// LoadError reports it.
func New() *Config {
	cfg := Defaults()

	dir, err := GetConfigDir()
	if err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		if loadErr := cfg.loadFile(cfg.configPath); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			cfg.loadErr = loadErr
		}
	} else {
		cfg.loadErr = err
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Load reads path strictly on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	cfg.configPath = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvCatalog); v != "" {
		c.Model.CatalogPath = v
	}
}

// LoadError returns the error, if any, hit while reading the config file
// in New.
func (c *Config) LoadError() error { return c.loadErr }

// ConfigPath returns the file Save writes to.
func (c *Config) ConfigPath() string { return c.configPath }

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) { c.configPath = path }

// Save writes the configuration as YAML to ConfigPath.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), configDirPermissions); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, configFilePermissions); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(ValidOutputFormats(), c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("output.default_format %q must be one of %v",
			c.Output.DefaultFormat, ValidOutputFormats()))
	}
	for key, p := range map[string]int{
		"output.water_precision":  c.Output.WaterPrecision,
		"output.carbon_precision": c.Output.CarbonPrecision,
	} {
		if p < 0 || p > MaxPrecision {
			errs = append(errs, fmt.Errorf("%s %d must be between 0 and %d", key, p, MaxPrecision))
		}
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		errs = append(errs, fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level))
	}
	if c.Logging.Format != logging.FormatConsole && c.Logging.Format != logging.FormatJSON {
		errs = append(errs, fmt.Errorf("logging.format %q must be %s or %s",
			c.Logging.Format, logging.FormatConsole, logging.FormatJSON))
	}

	m := c.Model
	if m.Horizon < 1 {
		errs = append(errs, fmt.Errorf("model.horizon %d must be >= 1", m.Horizon))
	}
	if m.MaxUsageCount < 1 || m.MaxUsageCount > m.Horizon {
		errs = append(errs, fmt.Errorf("model.max_usage_count %d must be between 1 and model.horizon (%d)",
			m.MaxUsageCount, m.Horizon))
	}
	if m.DefaultUsageCount < 1 || m.DefaultUsageCount > m.MaxUsageCount {
		errs = append(errs, fmt.Errorf("model.default_usage_count %d must be between 1 and model.max_usage_count (%d)",
			m.DefaultUsageCount, m.MaxUsageCount))
	}
	if m.CatalogPath != "" {
		if _, err := os.Stat(m.CatalogPath); err != nil {
			errs = append(errs, fmt.Errorf("model.catalog_path: %w", err))
		}
	}

	return errors.Join(errs...)
}
