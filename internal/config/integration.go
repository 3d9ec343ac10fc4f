package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// GlobalConfig holds the global configuration instance.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfigInit flag
var globalConfigInit bool       //nolint:gochecknoglobals // Tracks if global config has been initialized

// InitGlobalConfig initializes the global configuration from the global
// config file only.
func InitGlobalConfig() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfigInit {
		return
	}

	GlobalConfig = New()
	globalConfigInit = true
}

// InitGlobalConfigWithProject initializes the global configuration with the
// project overlay in projectDir merged on top. It replaces any earlier
// initialization so the CLI can call it once the project is resolved.
func InitGlobalConfigWithProject(ctx context.Context, projectDir string) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	GlobalConfig = NewWithProjectDir(ctx, projectDir)
	globalConfigInit = true
}

// ResetGlobalConfigForTest resets the global config for testing purposes.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	GlobalConfig = nil
	globalConfigInit = false
}

// GetGlobalConfig returns the global configuration, initializing it if needed.
func GetGlobalConfig() *Config {
	InitGlobalConfig()
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return GlobalConfig
}

// GetDefaultOutputFormat returns the configured default output format.
func GetDefaultOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}

// GetLogLevel returns the configured log level.
func GetLogLevel() string {
	return GetGlobalConfig().Logging.Level
}

// GetLogFile returns the configured log file path.
func GetLogFile() string {
	return GetGlobalConfig().Logging.File
}

// GetCatalogPath returns the configured catalog file, or "" for the
// built-in catalog.
func GetCatalogPath() string {
	return GetGlobalConfig().Model.CatalogPath
}

// EnsureConfigDir ensures the garmentlca configuration directory exists.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, configDirPermissions)
}

// EnsureLogDir ensures the directory for the configured log file exists.
// It does nothing when no log file is configured.
func EnsureLogDir() error {
	cfg := GetGlobalConfig()
	if cfg.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(cfg.Logging.File)
	if err := os.MkdirAll(logDir, configDirPermissions); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}

// GetConfigDir returns the path to the garmentlca configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ProjectDirName), nil
}
