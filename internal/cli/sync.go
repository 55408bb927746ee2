package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notion-ingest/internal/core/domain"
	"github.com/custodia-labs/notion-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/notion-ingest/internal/logger"
	"github.com/custodia-labs/notion-ingest/internal/storage/sqlite"
	"github.com/custodia-labs/notion-ingest/internal/writer/local"
)

var syncOpts syncOptions

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Render configured pages and databases to HTML files",
	Long: `Fetches every configured page and database from the Notion API,
renders each into a self-contained HTML document, and writes the
documents into the output directory as <id>.html files.

With --recursive, the connector first crawls the graph of pages and
databases reachable from the seeds and ingests all of them.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncOpts.token, "token", "", "Notion integration token")
	syncCmd.Flags().StringVar(&syncOpts.pageIDs, "page-ids", "", "comma-separated page ids")
	syncCmd.Flags().StringVar(&syncOpts.databaseIDs, "database-ids", "", "comma-separated database ids")
	syncCmd.Flags().BoolVar(&syncOpts.recursive, "recursive", false, "ingest everything reachable from the seeds")
	syncCmd.Flags().StringVarP(&syncOpts.output, "output", "o", "", "output directory (default notion-export)")
	syncCmd.Flags().StringVar(&syncOpts.dataDir, "data-dir", "", "state database directory (default ~/.notion-ingest/data)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := syncOpts.resolve(cmd)
	if err != nil {
		return err
	}

	connector, err := buildConnector(cfg)
	if err != nil {
		return err
	}
	defer connector.Close()

	writer, err := local.New(cfg.OutputDir)
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	started := time.Now().UTC()

	logger.Section("sync")
	cmd.Printf("Syncing into %s...\n", writer.Dir())

	docsChan, errsChan := connector.FullSync(ctx)
	for doc := range docsChan {
		path, err := writer.Write(ctx, doc)
		if err != nil {
			return fmt.Errorf("writing document %s: %w", doc.URI, err)
		}
		logger.Info("wrote %s", path)

		id, _ := doc.Metadata["notion_id"].(string)
		kind, _ := doc.Metadata["kind"].(string)
		if id != "" {
			if err := store.MarkProcessed(ctx, sourceID, id, kind); err != nil {
				logger.Warn("recording %s: %v", id, err)
			}
		}
	}

	err = <-errsChan
	complete, ok := driven.IsSyncComplete(err)
	if !ok {
		return fmt.Errorf("sync failed: %w", err)
	}

	run := domain.SyncRun{
		SourceID:   sourceID,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Documents:  complete.Documents,
		Failures:   complete.Failures,
	}
	if err := store.RecordRun(ctx, run); err != nil {
		logger.Warn("recording run: %v", err)
	}

	cmd.Printf("Synced %d documents (%d failures).\n", complete.Documents, complete.Failures)
	return nil
}
