// Package cli implements the notion-ingest command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/notion-ingest/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "notion-ingest",
	Short: "Sync Notion pages and databases to local HTML documents",
	Long: `notion-ingest renders the pages and databases shared with a Notion
integration into self-contained HTML files.

Configure the integration token and the seed page or database ids in
~/.notion-ingest/config.toml, or pass them as flags. With --recursive,
every page and database reachable from the seeds is ingested too.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"config file path (default ~/.notion-ingest/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
