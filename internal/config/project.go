package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/garmentlca/internal/logging"
)

// ProjectDirName is the directory holding project-local settings.
const ProjectDirName = ".garmentlca"

// ErrNoProject is returned by FindProject when no ancestor holds a
// ProjectDirName directory.
var ErrNoProject = errors.New("no .garmentlca directory found")

// resolvedProjectDir holds the resolved project directory path for use
// by other config functions during the lifetime of a CLI invocation.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory for use by other config functions.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored resolved project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .garmentlca directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. GARMENTLCA_PROJECT_DIR env var
//  3. FindProject(startDir) walk-up
//
// Returns an absolute path or "" if no project was found. The directory is
// not created.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	projectRoot, err := FindProject(startDir)
	if err != nil {
		if !errors.Is(err, ErrNoProject) {
			logging.FromContext(ctx).Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}

	return toAbsProjectDir(ctx, projectRoot)
}

// FindProject walks up from startDir looking for a directory that contains
// ProjectDirName. The global config directory does not count as a project.
func FindProject(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	globalDir, _ := GetConfigDir()
	if globalDir != "" {
		globalDir, _ = filepath.Abs(globalDir)
	}

	for {
		candidate := filepath.Join(dir, ProjectDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() && candidate != globalDir {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// NewWithProjectDir creates a Config by loading global config then
// shallow-merging project-local config on top. If projectDir is empty,
// behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return cfg
	}
	// Environment still wins over the overlay.
	merged.applyEnvOverrides()

	return merged
}

// toAbsProjectDir converts dir to an absolute path and appends ".garmentlca"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == ProjectDirName {
		return abs
	}

	return filepath.Join(abs, ProjectDirName)
}
