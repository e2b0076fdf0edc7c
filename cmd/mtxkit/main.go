// Package main provides the entry point for the mtxkit CLI tool.
package main

import (
	"context"
	"os"

	"github.com/omicstation/mtxkit/cmd/mtxkit/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	// Create app instance
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// Create context with signal handling so a long assembly can be
	// interrupted cleanly between pipeline stages
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	app.ExitOnError(application.Execute(ctx, os.Args[1:]))
}
