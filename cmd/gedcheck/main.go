// Package main is the entry point for the gedcheck CLI.
package main

import (
	"os"

	"github.com/thoreinstein/gedcheck/cmd/gedcheck/commands"
	"github.com/thoreinstein/gedcheck/internal/errors"
)

func main() {
	err := commands.Execute()
	if err != nil {
		commands.PrintError(os.Stderr, err)
	}
	os.Exit(errors.ExitCode(err))
}
