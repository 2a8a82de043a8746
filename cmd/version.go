package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "photoedit %s (%s, %s)\n", version, GitSHA, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
