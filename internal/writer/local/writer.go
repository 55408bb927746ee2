// Package local persists rendered documents as files on the local
// filesystem. Each document lands as <entity-id>.html under the
// configured output directory.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/notion-ingest/internal/core/domain"
	"github.com/custodia-labs/notion-ingest/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.DocumentWriter = (*Writer)(nil)

// Writer writes documents into a flat output directory.
type Writer struct {
	dir string
}

// New creates a writer rooted at dir, creating it if needed.
func New(dir string) (*Writer, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Write stores one document as <entity-id>.html and returns the path.
func (w *Writer) Write(ctx context.Context, doc domain.RawDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := fileName(doc)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// fileName derives the on-disk name from the document URI. The entity id
// is the last URI segment; it is a validated UUID upstream, so it is safe
// as a file name, but path separators are rejected anyway.
func fileName(doc domain.RawDocument) (string, error) {
	uri := doc.URI
	idx := strings.LastIndex(uri, "/")
	if idx < 0 || idx == len(uri)-1 {
		return "", fmt.Errorf("malformed document uri %q", uri)
	}
	id := uri[idx+1:]
	if strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("malformed document uri %q", uri)
	}
	return id + ".html", nil
}
