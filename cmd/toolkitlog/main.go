// Package main is the entry point for the toolkitlog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/toolkitlog/cmd/toolkitlog/commands"
	"github.com/thoreinstein/toolkitlog/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" && exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
		os.Exit(errors.ExitCode(err))
	}
}
