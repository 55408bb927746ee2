// Package notion implements a connector for Notion workspaces.
//
// The connector renders pages and databases shared with an integration
// into self-contained HTML documents. A page's block tree is walked
// depth-first and serialised as nested markup; a database is rendered
// as a flat property table with one row per entry. With recursion
// enabled, the connector additionally crawls every page and database
// reachable from the configured seeds.
//
// # Architecture
//
// The connector follows the driven port pattern defined in [driven.Connector].
// It comprises the following components:
//
//   - Connector: orchestrates sync operations and manages lifecycle
//   - Client: handles Notion API communication with rate limiting
//   - Config: parses and validates source configuration
//   - Block model: a tagged union of block payloads decoded from the API
//   - Renderer: recursive block-tree to HTML conversion with list
//     coalescing and dedicated table and column-list builders
//   - Crawler: worklist traversal discovering the reachable entity graph
//
// # Authentication
//
// Internal integration tokens are supported, created at
// notion.so/my-integrations. The integration must be explicitly shared
// with every page or database it should read; unshared entities answer
// with 404 regardless of token validity.
//
// # Configuration
//
// Source configuration accepts the following keys:
//
//   - page_ids: comma-separated Notion page ids to ingest.
//   - database_ids: comma-separated Notion database ids to ingest.
//   - recursive: "true" to also ingest every page and database
//     reachable from the seeds. Default: false.
//
// Ids are accepted with or without dashes. At least one page or
// database id is required.
//
// # Rate Limiting
//
// The connector implements a dual-strategy rate limiting approach:
//
//  1. Proactive throttling: a token bucket algorithm limits requests to
//     3 per second, the documented average the API permits.
//
//  2. Reactive handling: 429 responses carry a Retry-After header; the
//     client waits out the advertised interval before the next request.
//
// # Sync Operations
//
// Full sync renders every configured entity. For each page, the
// connector:
//
//  1. Fetches the page's root block
//  2. Walks the block tree depth-first, draining child pagination
//  3. Coalesces sibling list items and assembles tables and column
//     layouts
//  4. Serialises the tree into one HTML document
//
// For each database, it fetches the property schema, queries all rows,
// and renders a header row of sorted property names followed by one
// row of formatted property cells per entry.
//
// Child pages and child databases encountered during rendering are
// referenced, never inlined; their content is always emitted as
// separate documents.
//
// # Document Structure
//
// Documents are emitted with the following URI patterns:
//
//   - Pages: notion://page/{id}
//   - Databases: notion://database/{id}
//
// Metadata includes the entity id, its workspace URL, title, and last
// edited timestamp.
//
// # Error Handling
//
// The connector distinguishes between recoverable and fatal errors:
//
//   - Rate limit errors: automatically retried after waiting
//   - Remote errors on one entity: logged and skipped, the sync continues
//   - Authentication errors: reported immediately as [domain.ErrAuthInvalid]
//   - Malformed API payloads: reported as [DecodeError]
//   - Structural violations (children on a leaf block kind): reported
//     as [ErrStructuralViolation]
//
// # Limitations
//
//   - File, image, and video blocks are rendered as links; binary
//     content is not downloaded
//   - Watch mode is not supported (the API has no change feed)
//   - Comments and page-level permissions are not ingested
//
// # Example Usage
//
//	cfg, _ := notion.ParseConfig(source)
//	connector := notion.New(source.ID, cfg, tokenProvider)
//
//	if err := connector.Validate(ctx); err != nil {
//	    return err
//	}
//
//	docs, errs := connector.FullSync(ctx)
//	for doc := range docs {
//	    // Process document
//	}
package notion
