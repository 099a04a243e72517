// SPDX-License-Identifier: MIT

// Command rootbox finds and proves all roots of benchmark nonlinear systems.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/katalvlaran/rootbox/internal/cli"
)

func main() {
	// Interrupting a long search still prints the partial result.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
