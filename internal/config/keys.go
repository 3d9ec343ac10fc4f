package config

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownKey is returned by Get and Set for a key not listed in Keys.
var ErrUnknownKey = errors.New("unknown config key")

// Keys returns every dotted key accepted by Get and Set, in display order.
func Keys() []string {
	return []string{
		"output.default_format",
		"output.water_precision",
		"output.carbon_precision",
		"logging.level",
		"logging.format",
		"logging.file",
		"model.catalog_path",
		"model.horizon",
		"model.default_usage_count",
		"model.max_usage_count",
	}
}

// Get returns the string form of a dotted key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.water_precision":
		return strconv.Itoa(c.Output.WaterPrecision), nil
	case "output.carbon_precision":
		return strconv.Itoa(c.Output.CarbonPrecision), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "model.catalog_path":
		return c.Model.CatalogPath, nil
	case "model.horizon":
		return strconv.Itoa(c.Model.Horizon), nil
	case "model.default_usage_count":
		return strconv.Itoa(c.Model.DefaultUsageCount), nil
	case "model.max_usage_count":
		return strconv.Itoa(c.Model.MaxUsageCount), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set assigns a dotted key from its string form. Integer keys reject
// non-numeric values; range checks are left to Validate.
func (c *Config) Set(key, value string) error {
	intTarget := c.intField(key)
	if intTarget != nil {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		*intTarget = n
		return nil
	}

	switch key {
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	case "model.catalog_path":
		c.Model.CatalogPath = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func (c *Config) intField(key string) *int {
	switch key {
	case "output.water_precision":
		return &c.Output.WaterPrecision
	case "output.carbon_precision":
		return &c.Output.CarbonPrecision
	case "model.horizon":
		return &c.Model.Horizon
	case "model.default_usage_count":
		return &c.Model.DefaultUsageCount
	case "model.max_usage_count":
		return &c.Model.MaxUsageCount
	default:
		return nil
	}
}
