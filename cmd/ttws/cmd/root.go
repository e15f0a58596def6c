package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ttws",
	Short: "solve The Witness grid panels",
	Long: `TTWS - The "The Witness" Solver:
	- solve puzzle codes from https://windmill.thefifthmatt.com,
	- generate and solve random boards,
	- fetch the windmill puzzle catalogue,
	- render boards and solutions to SVG and JSON.`,
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
