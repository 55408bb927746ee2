package driven

import (
	"context"

	"github.com/custodia-labs/notion-ingest/internal/core/domain"
)

// DocumentWriter persists rendered documents produced by a connector.
type DocumentWriter interface {
	// Write stores one document. The implementation derives the
	// on-disk name from the document URI. Returns the path (or other
	// locator) the document was written to.
	Write(ctx context.Context, doc domain.RawDocument) (string, error)
}

// StateStore persists sync bookkeeping across runs.
type StateStore interface {
	// RecordRun stores the outcome of one completed sync.
	RecordRun(ctx context.Context, run domain.SyncRun) error

	// MarkProcessed records that an entity was rendered during a run.
	MarkProcessed(ctx context.Context, sourceID, entityID, kind string) error

	// ProcessedIDs returns all entity ids recorded for a source.
	ProcessedIDs(ctx context.Context, sourceID string) ([]string, error)

	// LastRun returns the most recent run for a source, or
	// domain.ErrNotFound if the source has never synced.
	LastRun(ctx context.Context, sourceID string) (domain.SyncRun, error)

	// Close releases the underlying storage.
	Close() error
}
