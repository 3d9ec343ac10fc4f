package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/garmentlca/internal/cli"
	"github.com/rshade/garmentlca/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.String())
		assert.NotNil(t, root)
		assert.Equal(t, "garmentlca", root.Use)
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "generic error", err: errors.New("boom"), want: 1},
		{name: "wrapped terminal error", err: fmt.Errorf("run: %w", cli.ErrNoTerminal), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
