package cmd

import (
	"github.com/bitrise-io/bitrise-code-assistant/logger"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	logLevel   string
	logFormat  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "code-assist",
	Short: "Code Assist - summarize, fix, complete and refactor code with a hosted LLM",
	Long: `Code Assist serves a small HTTP API in front of a hosted code model.
It can summarize code, detect and fix errors, suggest refactorings, complete and refactor snippets,
either through the server or directly from the command line.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel, logFormat)
		logger.Debugf("Log level set to: %s", logLevel)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command and handles errors
func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logger.FormatJSON,
		"Set the log output format (json, console)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to the settings file (defaults to code-assist.yml in the working directory)")
}
