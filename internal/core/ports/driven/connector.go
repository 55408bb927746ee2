package driven

import (
	"context"
	"errors"

	"github.com/custodia-labs/notion-ingest/internal/core/domain"
)

// Connector fetches documents from a data source.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// SourceID returns the configured source ID.
	SourceID() string

	// Capabilities returns what this connector supports.
	Capabilities() ConnectorCapabilities

	// Validate checks if the connector is properly configured and authenticated.
	// Performs a lightweight check to verify the connector is ready to sync.
	// For API connectors, this typically makes a test API call.
	// Returns nil if ready to sync, error describing the problem otherwise.
	Validate(ctx context.Context) error

	// FullSync fetches all documents from the source.
	// Returns channels for documents and errors. Connectors send
	// SyncComplete on the error channel upon successful completion.
	FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Watch listens for real-time changes.
	// Only available if SupportsWatch is true.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases resources.
	Close() error
}

// ConnectorCapabilities describes what a connector supports.
type ConnectorCapabilities struct {
	// SupportsWatch indicates the connector can push real-time events.
	SupportsWatch bool

	// SupportsHierarchy indicates the source has nested structure.
	SupportsHierarchy bool

	// RequiresAuth indicates the connector needs authentication.
	RequiresAuth bool

	// SupportsValidation indicates Validate() performs actual validation.
	// When true, Validate() makes a real check (e.g., API call).
	SupportsValidation bool

	// SupportsRateLimiting indicates the connector handles rate limiting internally.
	SupportsRateLimiting bool

	// SupportsPagination indicates the connector handles paginated APIs.
	// Connectors drain pagination internally; this is informational.
	SupportsPagination bool
}

// SyncComplete is sent on the error channel when sync completes successfully.
type SyncComplete struct {
	// Documents is the number of documents emitted during the sync.
	Documents int

	// Failures is the number of entities skipped due to render failures.
	Failures int
}

// Error implements the error interface.
// This allows SyncComplete to be sent on the error channel.
func (SyncComplete) Error() string {
	return "sync complete"
}

// IsSyncComplete checks if an error is actually a successful completion.
// Returns the SyncComplete and true if it is, nil and false otherwise.
func IsSyncComplete(err error) (*SyncComplete, bool) {
	var sc *SyncComplete
	if errors.As(err, &sc) {
		return sc, true
	}
	return nil, false
}
