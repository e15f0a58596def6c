package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the ttws version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ttws version %s\n", version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
