package notion

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/net/html"

	"github.com/custodia-labs/notion-ingest/internal/logger"
)

// ExtractPageHTML renders one page into a complete HTML document and
// returns the child pages and databases discovered in its block tree.
func ExtractPageHTML(ctx context.Context, f Fetcher, pageID string) (*html.Node, Refs, error) {
	root, err := f.GetBlock(ctx, pageID)
	if err != nil {
		return nil, Refs{}, fmt.Errorf("page root %s: %w", pageID, err)
	}

	var head *html.Node
	if childPage, ok := root.Payload.(*ChildPage); ok {
		head = el("head", el("title", text(childPage.Title)))
	}

	bodyContent, refs, err := RenderSubtree(ctx, f, root, 0)
	if err != nil {
		return nil, refs, err
	}

	doc := el("html", head, el("body", bodyContent))
	return doc, refs, nil
}

// ExtractDatabaseHTML renders one database as a flat one-level property
// table: a header row of lexicographically sorted property names, then
// one row per query result. Rows that are themselves pages or nested
// databases are recorded as discovered references; their content is
// never recursed into here.
func ExtractDatabaseHTML(ctx context.Context, f Fetcher, databaseID string) (*html.Node, Refs, error) {
	var refs Refs

	db, err := f.GetDatabase(ctx, databaseID)
	if err != nil {
		return nil, refs, fmt.Errorf("database %s: %w", databaseID, err)
	}

	names := make([]string, 0, len(db.Properties))
	for name := range db.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	headerRow := el("tr")
	for _, name := range names {
		appendChildren(headerRow, el("th", text(name)))
	}

	rows, err := f.QueryDatabase(ctx, databaseID)
	if err != nil {
		return nil, refs, fmt.Errorf("query database %s: %w", databaseID, err)
	}
	logger.Debug("rendering %d rows of database %s", len(rows), databaseID)

	tbody := el("tbody")
	for _, row := range rows {
		var props map[string]PropertyValue
		switch {
		case row.Database != nil:
			refs.AddDatabase(row.Database.ID)
		case row.Page != nil:
			refs.AddPage(row.Page.ID)
			props = row.Page.Properties
		}

		tr := el("tr")
		for _, name := range names {
			// A row missing a property still yields a cell, so columns
			// stay aligned.
			var cell *html.Node
			if prop, ok := props[name]; ok {
				cell = prop.HTML()
			}
			if cell == nil {
				cell = el("div")
			}
			appendChildren(tr, el("td", cell))
		}
		appendChildren(tbody, tr)
	}

	table := el("table", el("thead", headerRow), tbody)

	var head *html.Node
	body := el("body")
	if title := db.PlainTitle(); title != "" {
		head = el("head", el("title", text(title)))
		appendChildren(body, el("h1", richTextNodes(db.Title)...))
	}
	appendChildren(body, table)

	doc := el("html", head, body)
	return doc, refs, nil
}
