// Package main is the entry point for the govault CLI.
package main

import (
	"fmt"
	"os"

	"github.com/govault/govault/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
