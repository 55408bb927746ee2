package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notion-ingest/internal/core/domain"
	"github.com/custodia-labs/notion-ingest/internal/storage/sqlite"
)

var statusDataDir string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the outcome of the last sync",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusDataDir, "data-dir", "", "state database directory (default ~/.notion-ingest/data)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	store, err := sqlite.NewStore(statusDataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	run, err := store.LastRun(ctx, sourceID)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Println("No sync has run yet.")
		return nil
	}
	if err != nil {
		return err
	}

	ids, err := store.ProcessedIDs(ctx, sourceID)
	if err != nil {
		return err
	}

	cmd.Printf("Last sync finished %s\n", run.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("  documents: %d\n", run.Documents)
	cmd.Printf("  failures:  %d\n", run.Failures)
	cmd.Printf("  entities tracked: %d\n", len(ids))
	return nil
}
