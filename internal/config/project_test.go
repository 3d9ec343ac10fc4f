package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/garmentlca/internal/config"
)

// makeProject creates root/.garmentlca and returns its path.
func makeProject(t *testing.T, root string) string {
	t.Helper()
	dir := filepath.Join(root, config.ProjectDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func TestResolveProjectDir_FlagOverride(t *testing.T) {
	isolateHome(t)
	flagDir := t.TempDir()

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".garmentlca"), got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	isolateHome(t)
	flagDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, t.TempDir())

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".garmentlca"), got)
}

func TestResolveProjectDir_EnvVarOverride(t *testing.T) {
	isolateHome(t)
	envDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")

	assert.Equal(t, filepath.Join(envDir, ".garmentlca"), got)
}

func TestResolveProjectDir_NoDoubleAppend(t *testing.T) {
	isolateHome(t)
	dir := filepath.Join(t.TempDir(), ".garmentlca")

	got := config.ResolveProjectDir(context.Background(), dir, "")

	assert.Equal(t, dir, got)
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	want := makeProject(t, root)

	subDir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	got := config.ResolveProjectDir(context.Background(), "", subDir)

	assert.Equal(t, want, got)
}

func TestResolveProjectDir_NoProject(t *testing.T) {
	isolateHome(t)

	got := config.ResolveProjectDir(context.Background(), "", t.TempDir())

	assert.Empty(t, got, "should return empty string when no project found")
}

func TestFindProject_SkipsGlobalDir(t *testing.T) {
	root := t.TempDir()
	global := makeProject(t, root)
	t.Setenv(config.EnvHome, global)

	_, err := config.FindProject(filepath.Join(root))
	require.ErrorIs(t, err, config.ErrNoProject)
}

func TestFindProject_IgnoresPlainFile(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.ProjectDirName), []byte("x"), 0o600))

	_, err := config.FindProject(root)
	require.ErrorIs(t, err, config.ErrNoProject)
}

func TestResolvedProjectDir(t *testing.T) {
	t.Cleanup(func() { config.SetResolvedProjectDir("") })

	config.SetResolvedProjectDir("/work/.garmentlca")
	assert.Equal(t, "/work/.garmentlca", config.GetResolvedProjectDir())
}

func TestNewWithProjectDir_MissingOverlay(t *testing.T) {
	isolateHome(t)

	cfg := config.NewWithProjectDir(context.Background(), makeProject(t, t.TempDir()))

	assert.Equal(t, config.Defaults().Output, cfg.Output)
}
