package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notion-ingest/internal/core/domain"
	"github.com/custodia-labs/notion-ingest/internal/core/ports/driven"
)

// mockTokenProvider implements driven.TokenProvider for testing.
type mockTokenProvider struct {
	token string
	err   error
}

func (p *mockTokenProvider) GetToken(_ context.Context) (string, error) {
	return p.token, p.err
}

func (p *mockTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}

func TestNew(t *testing.T) {
	t.Run("creates connector with valid parameters", func(t *testing.T) {
		cfg := &Config{PageIDs: []string{"59833787-2cf9-4fdf-8782-e53db20768a5"}}
		tokenProvider := &mockTokenProvider{token: "test-token"}

		connector := New("test-source", cfg, tokenProvider)

		require.NotNil(t, connector)
		assert.Equal(t, "test-source", connector.SourceID())
		assert.Equal(t, "notion", connector.Type())
	})

	t.Run("implements Connector interface", func(t *testing.T) {
		connector := New("test", &Config{}, nil)
		var _ driven.Connector = connector
	})
}

func TestConnector_Capabilities(t *testing.T) {
	connector := New("test", &Config{}, nil)

	caps := connector.Capabilities()

	assert.True(t, caps.RequiresAuth, "should require auth")
	assert.True(t, caps.SupportsValidation, "should support validation")
	assert.True(t, caps.SupportsHierarchy, "pages nest")
	assert.True(t, caps.SupportsRateLimiting, "should rate limit internally")
	assert.True(t, caps.SupportsPagination, "should drain pagination")
	assert.False(t, caps.SupportsWatch, "no change feed")
}

func TestConnector_Close(t *testing.T) {
	t.Run("close succeeds and is idempotent", func(t *testing.T) {
		connector := New("test", &Config{}, nil)

		require.NoError(t, connector.Close())
		require.NoError(t, connector.Close())
	})

	t.Run("validate after close fails", func(t *testing.T) {
		connector := New("test", &Config{}, nil)
		require.NoError(t, connector.Close())

		err := connector.Validate(context.Background())

		assert.ErrorIs(t, err, domain.ErrConnectorClosed)
	})
}

func TestConnector_Watch(t *testing.T) {
	connector := New("test", &Config{}, nil)

	_, err := connector.Watch(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

// syncHandler serves a minimal workspace: one page with one paragraph.
func syncHandler(t *testing.T, pageID string) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/blocks/"+pageID, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "block", "id": pageID, "type": "child_page",
			"has_children": true,
			"child_page":   map[string]any{"title": "Home"},
		})
	})
	mux.HandleFunc("/v1/blocks/"+pageID+"/children", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results":  []any{blockJSON("b1", "paragraph")},
			"has_more": false,
		})
	})
	mux.HandleFunc("/v1/pages/"+pageID, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "page", "id": pageID,
			"url":        "https://notion.so/" + pageID,
			"properties": map[string]any{},
		})
	})
	return mux
}

// newTestConnector wires a connector to a local test server.
func newTestConnector(t *testing.T, cfg *Config, handler http.Handler) *Connector {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Connector{
		sourceID: "src-1",
		config:   cfg,
		client:   NewClientWithHTTPClient(srv.Client(), srv.URL),
	}
}

// drainSync collects all documents and the terminal error from a sync.
func drainSync(t *testing.T, connector *Connector) ([]domain.RawDocument, error) {
	t.Helper()
	docsChan, errsChan := connector.FullSync(context.Background())

	var docs []domain.RawDocument
	for doc := range docsChan {
		docs = append(docs, doc)
	}
	return docs, <-errsChan
}

func TestConnector_FullSync(t *testing.T) {
	const pageID = "59833787-2cf9-4fdf-8782-e53db20768a5"

	t.Run("emits one document per configured page", func(t *testing.T) {
		connector := newTestConnector(t,
			&Config{PageIDs: []string{pageID}},
			syncHandler(t, pageID))

		docs, err := drainSync(t, connector)

		complete, ok := driven.IsSyncComplete(err)
		require.True(t, ok, "sync should complete: %v", err)
		assert.Equal(t, 1, complete.Documents)
		assert.Equal(t, 0, complete.Failures)

		require.Len(t, docs, 1)
		doc := docs[0]
		assert.Equal(t, "src-1", doc.SourceID)
		assert.Equal(t, "notion://page/"+pageID, doc.URI)
		assert.Equal(t, "text/html", doc.MIMEType)
		assert.Contains(t, string(doc.Content), "<title>Home</title>")
		assert.Equal(t, pageID, doc.Metadata["notion_id"])
		assert.Equal(t, "page", doc.Metadata["kind"])
	})

	t.Run("remote failure on one page is counted not fatal", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code": "object_not_found"}`))
		})
		connector := newTestConnector(t,
			&Config{PageIDs: []string{pageID}},
			mux)

		docs, err := drainSync(t, connector)

		complete, ok := driven.IsSyncComplete(err)
		require.True(t, ok)
		assert.Equal(t, 0, complete.Documents)
		assert.Equal(t, 1, complete.Failures)
		assert.Empty(t, docs)
	})

	t.Run("closed connector reports immediately", func(t *testing.T) {
		connector := New("test", &Config{PageIDs: []string{pageID}}, nil)
		require.NoError(t, connector.Close())

		docsChan, errsChan := connector.FullSync(context.Background())
		for range docsChan {
		}

		assert.ErrorIs(t, <-errsChan, domain.ErrConnectorClosed)
	})
}

func TestConnector_FullSync_Database(t *testing.T) {
	const dbID = "8e2c2b76-9e1b-47ae-b368-19a021cf45b4"

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/databases/"+dbID, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "database", "id": dbID,
			"url":   "https://notion.so/" + dbID,
			"title": []any{map[string]any{"type": "text", "plain_text": "Tasks"}},
			"properties": map[string]any{
				"Name": map[string]any{"id": "t", "name": "Name", "type": "title"},
			},
		})
	})
	mux.HandleFunc("/v1/databases/"+dbID+"/query", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []any{map[string]any{
				"object": "page", "id": "row-1",
				"properties": map[string]any{
					"Name": map[string]any{
						"type":  "title",
						"title": []any{map[string]any{"type": "text", "plain_text": "First task"}},
					},
				},
			}},
			"has_more": false,
		})
	})

	connector := newTestConnector(t, &Config{DatabaseIDs: []string{dbID}}, mux)

	docs, err := drainSync(t, connector)

	complete, ok := driven.IsSyncComplete(err)
	require.True(t, ok, "sync should complete: %v", err)
	assert.Equal(t, 1, complete.Documents)

	require.Len(t, docs, 1)
	assert.Equal(t, "notion://database/"+dbID, docs[0].URI)
	content := string(docs[0].Content)
	assert.Contains(t, content, "<th>Name</th>")
	assert.Contains(t, content, "First task")
}

func TestConnector_FullSync_Recursive(t *testing.T) {
	const (
		rootID  = "59833787-2cf9-4fdf-8782-e53db20768a5"
		childID = "8e2c2b76-9e1b-47ae-b368-19a021cf45b4"
	)

	mux := http.NewServeMux()
	page := func(id, title string, children []any) {
		mux.HandleFunc("/v1/blocks/"+id, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"object": "block", "id": id, "type": "child_page",
				"has_children": len(children) > 0,
				"child_page":   map[string]any{"title": title},
			})
		})
		mux.HandleFunc("/v1/blocks/"+id+"/children", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"results": children, "has_more": false,
			})
		})
		mux.HandleFunc("/v1/pages/"+id, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"object": "page", "id": id, "properties": map[string]any{},
			})
		})
	}
	page(rootID, "Root", []any{map[string]any{
		"object": "block", "id": childID, "type": "child_page",
		"has_children": false,
		"child_page":   map[string]any{"title": "Child"},
	}})
	page(childID, "Child", nil)

	connector := newTestConnector(t,
		&Config{PageIDs: []string{rootID}, Recursive: true},
		mux)

	docs, err := drainSync(t, connector)

	complete, ok := driven.IsSyncComplete(err)
	require.True(t, ok, "sync should complete: %v", err)
	assert.Equal(t, 2, complete.Documents)

	uris := make([]string, 0, len(docs))
	for _, doc := range docs {
		uris = append(uris, doc.URI)
	}
	assert.ElementsMatch(t, []string{
		"notion://page/" + rootID,
		"notion://page/" + childID,
	}, uris)
}
