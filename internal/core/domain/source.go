package domain

import "time"

// Source represents a configured data source.
// Each source points at one Notion workspace via an integration token
// and a set of seed page/database ids.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// Type identifies the connector type (always "notion" today).
	Type string

	// Name is the human-readable name for this source.
	Name string

	// Config contains connector-specific configuration.
	Config map[string]string

	// CreatedAt is when the source was created.
	CreatedAt time.Time

	// UpdatedAt is when the source was last updated.
	UpdatedAt time.Time
}

// SyncState tracks the synchronisation progress for a source.
type SyncState struct {
	// SourceID links to the Source being synced.
	SourceID string

	// Cursor is an opaque token for incremental sync.
	Cursor string

	// LastSync is when the last successful sync completed.
	LastSync time.Time
}

// SyncRun records one completed sync of a source, for reporting
// and resume bookkeeping in the state store.
type SyncRun struct {
	// SourceID links to the Source that was synced.
	SourceID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed.
	FinishedAt time.Time

	// Documents is the number of documents emitted.
	Documents int

	// Failures is the number of entities that failed to render.
	Failures int
}
