package main

import (
	"os"

	"github.com/grovetools/pkgnav/cli"
	"github.com/grovetools/pkgnav/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"pkgnav",
		"Interactive manager for git-backed package-build directories",
	)
	rootCmd.RunE = cmd.RunTUI

	// Add subcommands
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
