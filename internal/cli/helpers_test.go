package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/garmentlca/internal/cli"
	"github.com/rshade/garmentlca/internal/config"
)

// cliEnv holds the isolated directories a test runs against.
type cliEnv struct {
	home    string
	project string
}

// setupCLITest isolates the global config, project overlay and env
// overrides, and resets global state when the test ends.
func setupCLITest(t *testing.T) cliEnv {
	t.Helper()
	env := cliEnv{home: t.TempDir(), project: t.TempDir()}
	t.Setenv(config.EnvHome, env.home)
	t.Setenv(config.EnvProjectDir, env.project)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv(config.EnvCatalog, "")
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return env
}

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTempFile writes content to name inside a fresh temp dir.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
