package notion

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/notion-ingest/internal/core/domain"
	"github.com/custodia-labs/notion-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/notion-ingest/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector fetches rendered documents from a Notion workspace.
type Connector struct {
	sourceID      string
	config        *Config
	client        *Client
	tokenProvider driven.TokenProvider
	mu            sync.Mutex
	closed        bool
}

// New creates a new Notion connector.
func New(sourceID string, cfg *Config, tokenProvider driven.TokenProvider) *Connector {
	return &Connector{
		sourceID:      sourceID,
		config:        cfg,
		tokenProvider: tokenProvider,
		client:        NewClient(tokenProvider),
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "notion"
}

// SourceID returns the source identifier.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Capabilities returns the connector's capabilities.
func (c *Connector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{
		SupportsWatch:        false, // No change feed in the API
		SupportsHierarchy:    true,  // Pages nest
		RequiresAuth:         true,
		SupportsValidation:   true,
		SupportsRateLimiting: true,
		SupportsPagination:   true,
	}
}

// Validate checks if the Notion connector is properly configured.
func (c *Connector) Validate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return domain.ErrConnectorClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// Validate credentials by making an API call
	if err := c.client.ValidateCredentials(ctx); err != nil {
		if IsUnauthorized(err) {
			return domain.ErrAuthInvalid
		}
		return fmt.Errorf("%w: %w", domain.ErrAuthRequired, err)
	}

	return nil
}

// FullSync renders every configured page and database, plus everything
// reachable from them when recursive crawling is enabled.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docsChan := make(chan domain.RawDocument)
	errsChan := make(chan error, 1)

	go func() {
		defer close(docsChan)
		defer close(errsChan)

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			errsChan <- domain.ErrConnectorClosed
			return
		}
		c.mu.Unlock()

		pageIDs, databaseIDs, err := c.resolveTargets(ctx)
		if err != nil {
			errsChan <- err
			return
		}

		documents := 0
		failures := 0

		emit := func(doc domain.RawDocument) bool {
			select {
			case <-ctx.Done():
				return false
			case docsChan <- doc:
				documents++
				return true
			}
		}

		for _, id := range pageIDs {
			select {
			case <-ctx.Done():
				return
			default:
			}

			doc, err := c.renderPage(ctx, id)
			if err != nil {
				if !IsRemote(err) {
					errsChan <- err
					return
				}
				logger.Error("skipping page %s: %v", id, err)
				failures++
				continue
			}
			if !emit(doc) {
				return
			}
		}

		for _, id := range databaseIDs {
			select {
			case <-ctx.Done():
				return
			default:
			}

			doc, err := c.renderDatabase(ctx, id)
			if err != nil {
				if !IsRemote(err) {
					errsChan <- err
					return
				}
				logger.Error("skipping database %s: %v", id, err)
				failures++
				continue
			}
			if !emit(doc) {
				return
			}
		}

		errsChan <- &driven.SyncComplete{
			Documents: documents,
			Failures:  failures,
		}
	}()

	return docsChan, errsChan
}

// resolveTargets expands the configured seeds into the full list of
// entities to render. With recursion off the seeds are returned as-is;
// with it on, each seed is crawled and the discovered sets are unioned
// behind the seeds, deduplicated.
func (c *Connector) resolveTargets(ctx context.Context) (pageIDs, databaseIDs []string, err error) {
	pageIDs = append(pageIDs, c.config.PageIDs...)
	databaseIDs = append(databaseIDs, c.config.DatabaseIDs...)

	if !c.config.Recursive {
		return pageIDs, databaseIDs, nil
	}

	seen := make(map[string]bool, len(pageIDs)+len(databaseIDs))
	for _, id := range pageIDs {
		seen[id] = true
	}
	for _, id := range databaseIDs {
		seen[id] = true
	}

	addResult := func(result CrawlResult) {
		for _, id := range result.Pages {
			if !seen[id] {
				seen[id] = true
				pageIDs = append(pageIDs, id)
			}
		}
		for _, id := range result.Databases {
			if !seen[id] {
				seen[id] = true
				databaseIDs = append(databaseIDs, id)
			}
		}
	}

	for _, id := range c.config.PageIDs {
		result, err := CrawlFromPage(ctx, c.client, id)
		if err != nil {
			return nil, nil, fmt.Errorf("crawl page %s: %w", id, err)
		}
		addResult(result)
	}
	for _, id := range c.config.DatabaseIDs {
		result, err := CrawlFromDatabase(ctx, c.client, id)
		if err != nil {
			return nil, nil, fmt.Errorf("crawl database %s: %w", id, err)
		}
		addResult(result)
	}

	return pageIDs, databaseIDs, nil
}

// renderPage fetches and renders one page into a document.
func (c *Connector) renderPage(ctx context.Context, pageID string) (domain.RawDocument, error) {
	doc, _, err := ExtractPageHTML(ctx, c.client, pageID)
	if err != nil {
		return domain.RawDocument{}, err
	}

	content, err := renderHTML(doc)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("serialize page %s: %w", pageID, err)
	}

	metadata := map[string]any{
		"notion_id": pageID,
		"kind":      "page",
	}
	if page, err := c.client.GetPage(ctx, pageID); err == nil {
		metadata["url"] = page.URL
		metadata["last_edited_time"] = page.LastEditedTime
		if title := page.Title(); title != "" {
			metadata["title"] = title
		}
	}

	return domain.RawDocument{
		SourceID: c.sourceID,
		URI:      "notion://page/" + pageID,
		MIMEType: "text/html",
		Content:  []byte(content),
		Metadata: metadata,
	}, nil
}

// renderDatabase fetches and renders one database into a document.
func (c *Connector) renderDatabase(ctx context.Context, databaseID string) (domain.RawDocument, error) {
	doc, _, err := ExtractDatabaseHTML(ctx, c.client, databaseID)
	if err != nil {
		return domain.RawDocument{}, err
	}

	content, err := renderHTML(doc)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("serialize database %s: %w", databaseID, err)
	}

	metadata := map[string]any{
		"notion_id": databaseID,
		"kind":      "database",
	}
	if db, err := c.client.GetDatabase(ctx, databaseID); err == nil {
		metadata["url"] = db.URL
		metadata["last_edited_time"] = db.LastEditedTime
		if title := db.PlainTitle(); title != "" {
			metadata["title"] = title
		}
	}

	return domain.RawDocument{
		SourceID: c.sourceID,
		URI:      "notion://database/" + databaseID,
		MIMEType: "text/html",
		Content:  []byte(content),
		Metadata: metadata,
	}, nil
}

// Watch is not supported: the Notion API has no change feed.
func (c *Connector) Watch(_ context.Context) (<-chan domain.RawDocumentChange, error) {
	return nil, domain.ErrNotImplemented
}

// Close releases resources.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
