// Package main provides the entry point for isis.
//
// isis hides a file inside an image by rewriting the least significant
// bits of its samples, optionally sealing the file with a password first.
// Run without arguments it starts the interactive menu.
package main

import (
	"os"

	"github.com/yndnr/isis-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		command.PrintError(os.Stderr, err)
		os.Exit(command.ExitCode(err))
	}
}
