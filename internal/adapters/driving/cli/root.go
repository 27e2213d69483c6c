// Package cli implements the ubot command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/campuslabs/ubot/internal/logger"
)

// version is the application version, set at build time via ldflags.
var version = "dev"

var (
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "ubot",
	Short: "Campus knowledge chatbot",
	Long: `ubot answers student questions from an indexed campus knowledge base.

Crawl the campus site (or drop .txt and .md files into a directory), ingest
the content into the local vector index, then ask questions from the
terminal, the interactive chat interface, or the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.ubot)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
