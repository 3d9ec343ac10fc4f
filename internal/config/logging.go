package config

import (
	"io"

	"github.com/rshade/garmentlca/internal/logging"
)

// ToLoggingConfig converts the logging section into a logging.Config that
// writes to out when no file is configured.
func (c *Config) ToLoggingConfig(out io.Writer) logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: out,
		File:   c.Logging.File,
	}
}

// GetLoggingConfig returns the global configuration's logging settings.
func GetLoggingConfig(out io.Writer) logging.Config {
	return GetGlobalConfig().ToLoggingConfig(out)
}
