// Package sqlite persists sync bookkeeping in a local SQLite database:
// completed sync runs and the entity ids processed per source.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/notion-ingest/internal/core/domain"
	"github.com/custodia-labs/notion-ingest/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.StateStore = (*Store)(nil)

// Store is a SQLite-backed state store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a state store at the specified data directory.
// If dataDir is empty, defaults to ~/.notion-ingest/data/state.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".notion-ingest", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "state.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate creates the schema.
func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sync_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_id TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL,
			documents INTEGER NOT NULL,
			failures INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sync_runs_source ON sync_runs(source_id, finished_at);

		CREATE TABLE IF NOT EXISTS processed_entities (
			source_id TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			processed_at DATETIME NOT NULL,
			PRIMARY KEY (source_id, entity_id)
		);
	`)
	return err
}

// RecordRun stores the outcome of one completed sync.
func (s *Store) RecordRun(ctx context.Context, run domain.SyncRun) error {
	if run.SourceID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_runs (source_id, started_at, finished_at, documents, failures)
		VALUES (?, ?, ?, ?, ?)
	`, run.SourceID, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Documents, run.Failures)

	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// MarkProcessed records that an entity was rendered during a run.
func (s *Store) MarkProcessed(ctx context.Context, sourceID, entityID, kind string) error {
	if sourceID == "" || entityID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO processed_entities (source_id, entity_id, kind, processed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(source_id, entity_id) DO UPDATE SET
			kind = excluded.kind,
			processed_at = excluded.processed_at
	`, sourceID, entityID, kind, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("marking entity processed: %w", err)
	}
	return nil
}

// ProcessedIDs returns all entity ids recorded for a source.
func (s *Store) ProcessedIDs(ctx context.Context, sourceID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entity_id FROM processed_entities
		WHERE source_id = ?
		ORDER BY processed_at, entity_id
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("querying processed entities: %w", err)
	}
	defer rows.Close()

	var ids []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning entity id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating processed entities: %w", err)
	}

	return ids, nil
}

// LastRun returns the most recent run for a source.
func (s *Store) LastRun(ctx context.Context, sourceID string) (domain.SyncRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT source_id, started_at, finished_at, documents, failures
		FROM sync_runs WHERE source_id = ?
		ORDER BY finished_at DESC, id DESC
		LIMIT 1
	`, sourceID)

	var run domain.SyncRun
	if err := row.Scan(&run.SourceID, &run.StartedAt, &run.FinishedAt,
		&run.Documents, &run.Failures); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SyncRun{}, domain.ErrNotFound
		}
		return domain.SyncRun{}, fmt.Errorf("scanning run: %w", err)
	}

	return run, nil
}
