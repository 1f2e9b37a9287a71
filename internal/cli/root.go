// Package cli wires the rubyoutline commands.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  = logrus.New()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "rubyoutline",
	Short: "Document-symbol outlines for Ruby and the Rails DSL",
	Long: `rubyoutline extracts hierarchical document outlines from Ruby source,
recognizing Rails DSL declarations (test/it, lifecycle callbacks,
attribute accessors) alongside classes, modules, and methods.

Run it as a language server (rubyoutline serve) or print outlines
directly (rubyoutline outline).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.InfoLevel)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}
