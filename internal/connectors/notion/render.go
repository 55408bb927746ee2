package notion

import (
	"context"
	"fmt"

	"golang.org/x/net/html"

	"github.com/custodia-labs/notion-ingest/internal/logger"
)

// Fetcher is the slice of the API client the traversal code depends on.
// All paginated listings are fully drained before returning.
type Fetcher interface {
	// GetBlock retrieves a single block. A page id is a valid block id:
	// the API answers with the page's child_page block.
	GetBlock(ctx context.Context, blockID string) (*Block, error)

	// GetBlockChildren retrieves all children of a block, in order.
	GetBlockChildren(ctx context.Context, blockID string) ([]*Block, error)

	// GetPage retrieves a page's metadata.
	GetPage(ctx context.Context, pageID string) (*Page, error)

	// GetDatabase retrieves a database's metadata and property schema.
	GetDatabase(ctx context.Context, databaseID string) (*Database, error)

	// QueryDatabase retrieves all rows of a database, in order.
	QueryDatabase(ctx context.Context, databaseID string) ([]*Row, error)
}

// Refs accumulates the page and database ids discovered while walking a
// subtree. Ids are deduplicated on insert.
type Refs struct {
	Pages     []string
	Databases []string
}

// AddPage records a discovered child page id.
func (r *Refs) AddPage(id string) {
	if !containsID(r.Pages, id) {
		r.Pages = append(r.Pages, id)
	}
}

// AddDatabase records a discovered child database id.
func (r *Refs) AddDatabase(id string) {
	if !containsID(r.Databases, id) {
		r.Databases = append(r.Databases, id)
	}
}

// Merge folds another reference set into this one.
func (r *Refs) Merge(other Refs) {
	for _, id := range other.Pages {
		r.AddPage(id)
	}
	for _, id := range other.Databases {
		r.AddDatabase(id)
	}
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// List container style palettes, cycled by nesting depth so sibling list
// levels look distinct without an unbounded style table.
var (
	bulletedListStyles = [...]string{"circle", "square", "disc"}
	numberedListTypes  = [...]string{"i", "a", "1"}
)

// childEntry pairs a rendered child fragment with the payload that
// produced it, so list coalescing can dispatch by kind afterwards.
type childEntry struct {
	payload Payload
	node    *html.Node
}

// RenderSubtree renders one block and, depth-first, everything below it
// into a single markup fragment, returning the page and database ids
// discovered along the way.
//
// Child pages and child databases are recorded but never inlined: their
// content belongs to separate documents. Tables and column lists are
// assembled by their dedicated builders. Runs of sibling list items are
// coalesced into shared list containers.
func RenderSubtree(ctx context.Context, f Fetcher, block *Block, depth int) (*html.Node, Refs, error) {
	var refs Refs

	node := block.Payload.HTML()
	if !block.HasChildren {
		return node, refs, nil
	}

	if !block.Payload.CanHaveChildren() {
		return nil, refs, fmt.Errorf("%w: %s block %s reports children", ErrStructuralViolation, block.Type, block.ID)
	}
	if node == nil {
		node = el("div")
	}

	children, err := f.GetBlockChildren(ctx, block.ID)
	if err != nil {
		return nil, refs, fmt.Errorf("children of %s: %w", block.ID, err)
	}
	logger.Debug("rendering %d children of %s block %s at depth %d", len(children), block.Type, block.ID, depth)

	entries := make([]childEntry, 0, len(children))
	for _, child := range children {
		switch payload := child.Payload.(type) {
		case *ChildPage:
			// A page's own id can come back as a child_page marker for
			// itself; inline it like any other block instead of
			// re-discovering it.
			if child.ID != block.ID {
				refs.AddPage(child.ID)
				continue
			}
		case *ChildDatabase:
			refs.AddDatabase(child.ID)
			continue
		case *Table:
			tableNode, tableRefs, err := buildTable(ctx, f, child)
			if err != nil {
				return nil, refs, err
			}
			refs.Merge(tableRefs)
			entries = append(entries, childEntry{payload: payload, node: tableNode})
			continue
		case *ColumnList:
			listNode, listRefs, err := buildColumnList(ctx, f, child, depth)
			if err != nil {
				return nil, refs, err
			}
			refs.Merge(listRefs)
			entries = append(entries, childEntry{payload: payload, node: listNode})
			continue
		}

		childNode, childRefs, err := RenderSubtree(ctx, f, child, depth+1)
		if err != nil {
			return nil, refs, err
		}
		refs.Merge(childRefs)
		entries = append(entries, childEntry{payload: child.Payload, node: childNode})
	}

	appendChildren(node, coalesceLists(entries, depth)...)
	return node, refs, nil
}

// coalesceLists reconstructs list semantics from a flat sibling sequence:
// consecutive bulleted items collapse into one <ul>, consecutive numbered
// items into one <ol>. A run breaks on any non-list sibling or at the end
// of the sequence, at which point the accumulated container is emitted
// followed by the sibling's own fragment.
func coalesceLists(entries []childEntry, depth int) []*html.Node {
	styleIdx := (depth + 1) % len(bulletedListStyles)
	typeIdx := (depth + 1) % len(numberedListTypes)

	var out []*html.Node
	var bullets, numbers []*html.Node

	flush := func() {
		if len(numbers) > 0 {
			out = append(out, elAttr("ol", []html.Attribute{attr("type", numberedListTypes[typeIdx])}, numbers...))
			numbers = nil
		}
		if len(bullets) > 0 {
			out = append(out, elAttr("ul", []html.Attribute{attr("type", bulletedListStyles[styleIdx])}, bullets...))
			bullets = nil
		}
	}

	for _, entry := range entries {
		switch entry.payload.(type) {
		case *BulletedListItem:
			if entry.node != nil {
				bullets = append(bullets, entry.node)
			}
			continue
		case *NumberedListItem:
			if entry.node != nil {
				numbers = append(numbers, entry.node)
			}
			continue
		}
		flush()
		if entry.node != nil {
			out = append(out, entry.node)
		}
	}
	flush()

	return out
}
