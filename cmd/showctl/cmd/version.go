package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/mcp-showcase/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit, and build time of showctl.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if output == outputJSON {
			return writeJSON(cmd.OutOrStdout(), info)
		}
		fmt.Fprintln(cmd.OutOrStdout(), info.String("showctl"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
