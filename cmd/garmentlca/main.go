// Command garmentlca estimates the water and carbon footprint of a garment
// across its lifecycle.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rshade/garmentlca/internal/cli"
	"github.com/rshade/garmentlca/pkg/version"
)

func main() {
	os.Exit(exitCode(run()))
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(version.String()).ExecuteContext(ctx)
}

// exitCode maps a command error to the process exit status. Cobra has
// already printed the error.
func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
