package cmd

import (
	"fmt"

	"github.com/bitrise-io/bitrise-code-assistant/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the version of Code Assist`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Code Assist v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
