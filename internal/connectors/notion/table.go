package notion

import (
	"context"
	"fmt"

	"golang.org/x/net/html"
)

// buildTable assembles a table block and its row children into one table
// fragment. Scanning cell mentions is the only reference-discovery path
// for tables; the generic per-child recursion is bypassed for rows.
func buildTable(ctx context.Context, f Fetcher, block *Block) (*html.Node, Refs, error) {
	var refs Refs

	table, ok := block.Payload.(*Table)
	if !ok {
		return nil, refs, fmt.Errorf("%w: block %s is not a table", ErrStructuralViolation, block.ID)
	}

	children, err := f.GetBlockChildren(ctx, block.ID)
	if err != nil {
		return nil, refs, fmt.Errorf("table rows of %s: %w", block.ID, err)
	}

	rows := make([]*TableRow, 0, len(children))
	for _, child := range children {
		if row, ok := child.Payload.(*TableRow); ok {
			rows = append(rows, row)
		}
	}

	for _, row := range rows {
		for _, cell := range row.Cells {
			mentionRefs(cell, &refs)
		}
	}

	node := el("table")
	if table.HasColumnHeader && len(rows) > 0 {
		header := rows[0]
		rows = rows[1:]
		header.IsHeader = true
		appendChildren(node, header.HTML())
	}
	for _, row := range rows {
		appendChildren(node, row.HTML())
	}

	return node, refs, nil
}

// buildColumnList assembles a column_list block: each column is rendered
// one level deeper and wrapped in a block container sized to an equal
// share of the width, floated left to right.
//
// References discovered inside columns are not propagated to the caller.
// That mirrors the long-standing behaviour of the ingestion pipeline this
// connector replaces; recursive discovery still reaches such pages
// through the crawler, which walks children independently.
func buildColumnList(ctx context.Context, f Fetcher, block *Block, depth int) (*html.Node, Refs, error) {
	var refs Refs

	if _, ok := block.Payload.(*ColumnList); !ok {
		return nil, refs, fmt.Errorf("%w: block %s is not a column list", ErrStructuralViolation, block.ID)
	}

	columns, err := f.GetBlockChildren(ctx, block.ID)
	if err != nil {
		return nil, refs, fmt.Errorf("columns of %s: %w", block.ID, err)
	}

	wrapper := el("div")
	width := 100.0
	if len(columns) > 0 {
		width = 100.0 / float64(len(columns))
	}
	style := fmt.Sprintf("width:%g%%; float: left", width)

	for _, column := range columns {
		columnNode, _, err := RenderSubtree(ctx, f, column, depth+1)
		if err != nil {
			return nil, refs, err
		}
		appendChildren(wrapper, elAttr("div", []html.Attribute{attr("style", style)}, columnNode))
	}

	return wrapper, refs, nil
}
