// Package main provides the CLI entrypoint for dlf-generator.
//
// dlf-generator turns a libdlf-style filter manifest into a Go package:
//   - Loads and validates filters.json against its schema and naming rules
//   - Extracts the documentation header of every filter table
//   - Materializes the tables as text or compressed binary containers
//   - Emits one lazily loading accessor function per filter
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
)

// Version is the generator version (set via -ldflags).
var Version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCommand(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		os.Exit(exitFailure)
	}
}
