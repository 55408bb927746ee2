package domain

// RawDocument represents one rendered document fetched by a connector.
// For the Notion connector this is a complete, self-contained HTML file.
type RawDocument struct {
	// SourceID links to the Source that produced this document.
	SourceID string

	// URI is the original location (e.g. "notion://page/<id>").
	URI string

	// MIMEType is the content type (e.g. "text/html").
	MIMEType string

	// Content is the raw bytes, always UTF-8 text for this connector.
	Content []byte

	// ParentURI links to a parent for hierarchical sources.
	ParentURI *string

	// Metadata contains connector-specific key-value pairs.
	Metadata map[string]any
}

// ChangeType represents the type of document change.
type ChangeType int

const (
	// ChangeCreated indicates a new document.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified document.
	ChangeUpdated

	// ChangeDeleted indicates a removed document.
	ChangeDeleted
)

// RawDocumentChange represents a change event from a connector.
// Used by watch-capable connectors; the Notion API has no change feed,
// so the Notion connector never emits these.
type RawDocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Document is the affected document.
	Document RawDocument
}
