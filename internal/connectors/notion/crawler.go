package notion

import (
	"context"

	"github.com/custodia-labs/notion-ingest/internal/logger"
)

// The crawler discovers the full transitive closure of pages and
// databases reachable from a starting entity, independent of and prior
// to any HTML rendering. It drives recursive ingestion scheduling.
//
// The traversal is an explicit worklist, not recursion: crawl depth is
// bounded by memory rather than call-stack depth, since workspace graphs
// can be arbitrarily deep.

type entryKind int

const (
	entryPage entryKind = iota
	entryDatabase
)

type queueEntry struct {
	kind entryKind
	id   string
}

// CrawlResult holds the deduplicated sets of discovered entity ids.
// The start entity itself is never part of the result.
type CrawlResult struct {
	Pages     []string
	Databases []string
}

// CrawlFromPage walks the reachable graph starting at a page.
func CrawlFromPage(ctx context.Context, f Fetcher, pageID string) (CrawlResult, error) {
	return crawl(ctx, f, queueEntry{kind: entryPage, id: pageID})
}

// CrawlFromDatabase walks the reachable graph starting at a database.
func CrawlFromDatabase(ctx context.Context, f Fetcher, databaseID string) (CrawlResult, error) {
	return crawl(ctx, f, queueEntry{kind: entryDatabase, id: databaseID})
}

// crawl runs the worklist loop. Remote fetch failures are entry-local:
// the entry is dropped from the discovered set, logged, and the crawl
// continues, returning a best-effort result. Every id is enqueued at
// most once per kind because enqueueing is gated on the processed and
// discovered sets, so the loop terminates on any finite graph, cycles
// included.
func crawl(ctx context.Context, f Fetcher, init queueEntry) (CrawlResult, error) {
	worklist := []queueEntry{init}
	processed := make(map[string]bool)
	discoveredPages := make(map[string]bool)
	discoveredDBs := make(map[string]bool)
	var pageOrder, dbOrder []string

	enqueuePage := func(id string) {
		if processed[id] || discoveredPages[id] {
			return
		}
		discoveredPages[id] = true
		pageOrder = append(pageOrder, id)
		worklist = append(worklist, queueEntry{kind: entryPage, id: id})
	}
	enqueueDatabase := func(id string) {
		if processed[id] || discoveredDBs[id] {
			return
		}
		discoveredDBs[id] = true
		dbOrder = append(dbOrder, id)
		worklist = append(worklist, queueEntry{kind: entryDatabase, id: id})
	}

	for len(worklist) > 0 {
		if err := ctx.Err(); err != nil {
			return CrawlResult{}, err
		}

		// Pop order is not significant for the final sets; a stack keeps
		// the slice bookkeeping trivial.
		entry := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		processed[entry.id] = true

		switch entry.kind {
		case entryPage:
			logger.Debug("crawling page %s", entry.id)
			children, err := f.GetBlockChildren(ctx, entry.id)
			if err != nil {
				if !IsRemote(err) {
					return CrawlResult{}, err
				}
				logger.Error("failed to get page %s: %v", entry.id, err)
				delete(discoveredPages, entry.id)
				continue
			}

			for _, child := range children {
				switch payload := child.Payload.(type) {
				case *ChildPage:
					enqueuePage(child.ID)
				case *ChildDatabase:
					enqueueDatabase(child.ID)
				case *LinkToPage:
					if payload.PageID != "" {
						enqueuePage(payload.PageID)
					}
					if payload.DatabaseID != "" {
						enqueueDatabase(payload.DatabaseID)
					}
				}
			}

		case entryDatabase:
			logger.Debug("crawling database %s", entry.id)
			rows, err := f.QueryDatabase(ctx, entry.id)
			if err != nil {
				if !IsRemote(err) {
					return CrawlResult{}, err
				}
				logger.Error("failed to query database %s: %v", entry.id, err)
				delete(discoveredDBs, entry.id)
				continue
			}

			for _, row := range rows {
				switch {
				case row.Page != nil:
					enqueuePage(row.Page.ID)
				case row.Database != nil:
					enqueueDatabase(row.Database.ID)
				}
			}
		}
	}

	result := CrawlResult{}
	for _, id := range pageOrder {
		if discoveredPages[id] {
			result.Pages = append(result.Pages, id)
		}
	}
	for _, id := range dbOrder {
		if discoveredDBs[id] {
			result.Databases = append(result.Databases, id)
		}
	}
	return result, nil
}
