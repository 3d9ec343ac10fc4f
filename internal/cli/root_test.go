package cli_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/garmentlca/internal/cli"
	"github.com/rshade/garmentlca/internal/tui"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := cli.NewRootCmd("test")

	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"estimate", "project", "compare", "interactive", "catalog", "config"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmd_Version(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "garmentlca version test")
}

func TestRootCmd_Debug(t *testing.T) {
	setupCLITest(t)

	_, stderr, err := runCLI(t, "estimate", "--debug", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "command started")
	assert.Contains(t, stderr, "recompute pass complete")
}

func TestInteractive_RequiresTerminal(t *testing.T) {
	if tui.IsTerminal(os.Stdin) && tui.IsTerminal(os.Stdout) {
		t.Skip("running attached to a terminal")
	}
	setupCLITest(t)

	_, _, err := runCLI(t, "interactive")
	require.ErrorIs(t, err, cli.ErrNoTerminal)
}
