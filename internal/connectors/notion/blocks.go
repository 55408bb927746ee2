package notion

import (
	"golang.org/x/net/html"
)

// Block payload variants. One struct per kind the API can return,
// mirroring https://developers.notion.com/reference/block.

// Paragraph is a plain text block.
type Paragraph struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

func (*Paragraph) CanHaveChildren() bool { return true }

func (p *Paragraph) HTML() *html.Node {
	return el("p", richTextNodes(p.RichText)...)
}

// Heading covers heading_1 through heading_3. Toggleable headings may
// nest children.
type Heading struct {
	Level        int        `json:"-"`
	RichText     []RichText `json:"rich_text"`
	IsToggleable bool       `json:"is_toggleable"`
	Color        string     `json:"color,omitempty"`
}

func (*Heading) CanHaveChildren() bool { return true }

func (h *Heading) HTML() *html.Node {
	tag := "h1"
	switch h.Level {
	case 2:
		tag = "h2"
	case 3:
		tag = "h3"
	}
	return el(tag, richTextNodes(h.RichText)...)
}

// BulletedListItem is one unordered list entry. Sibling runs are merged
// into a single list container by the renderer.
type BulletedListItem struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

func (*BulletedListItem) CanHaveChildren() bool { return true }

func (b *BulletedListItem) HTML() *html.Node {
	return el("li", richTextNodes(b.RichText)...)
}

// NumberedListItem is one ordered list entry.
type NumberedListItem struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

func (*NumberedListItem) CanHaveChildren() bool { return true }

func (n *NumberedListItem) HTML() *html.Node {
	return el("li", richTextNodes(n.RichText)...)
}

// ToDo is a checkbox item.
type ToDo struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
}

func (*ToDo) CanHaveChildren() bool { return true }

func (t *ToDo) HTML() *html.Node {
	attrs := []html.Attribute{attr("type", "checkbox"), attr("disabled", "")}
	if t.Checked {
		attrs = append(attrs, attr("checked", ""))
	}
	box := elAttr("input", attrs)
	return el("div", append([]*html.Node{box}, richTextNodes(t.RichText)...)...)
}

// Toggle is a collapsible block; its children render inside the fragment.
type Toggle struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

func (*Toggle) CanHaveChildren() bool { return true }

func (t *Toggle) HTML() *html.Node {
	summary := el("summary", richTextNodes(t.RichText)...)
	return el("details", summary)
}

// Quote is a block quotation.
type Quote struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

func (*Quote) CanHaveChildren() bool { return true }

func (q *Quote) HTML() *html.Node {
	return el("blockquote", richTextNodes(q.RichText)...)
}

// Callout is an emphasised aside.
type Callout struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

func (*Callout) CanHaveChildren() bool { return true }

func (c *Callout) HTML() *html.Node {
	return el("div", richTextNodes(c.RichText)...)
}

// Code is a fenced code block.
type Code struct {
	RichText []RichText `json:"rich_text"`
	Caption  []RichText `json:"caption,omitempty"`
	Language string     `json:"language,omitempty"`
}

func (*Code) CanHaveChildren() bool { return false }

func (c *Code) HTML() *html.Node {
	inner := el("code", text(plainText(c.RichText)))
	if c.Language != "" {
		inner.Attr = []html.Attribute{attr("class", "language-"+c.Language)}
	}
	return el("pre", inner)
}

// Divider is a horizontal rule.
type Divider struct{}

func (*Divider) CanHaveChildren() bool { return false }

func (*Divider) HTML() *html.Node { return el("hr") }

// EquationBlock is a display-level LaTeX expression.
type EquationBlock struct {
	Expression string `json:"expression"`
}

func (*EquationBlock) CanHaveChildren() bool { return false }

func (e *EquationBlock) HTML() *html.Node {
	return el("div", text(e.Expression))
}

// Bookmark links to an external URL.
type Bookmark struct {
	URL     string     `json:"url"`
	Caption []RichText `json:"caption,omitempty"`
}

func (*Bookmark) CanHaveChildren() bool { return false }

func (b *Bookmark) HTML() *html.Node {
	label := plainText(b.Caption)
	if label == "" {
		label = b.URL
	}
	return elAttr("a", []html.Attribute{attr("href", b.URL)}, text(label))
}

// Embed inlines an external resource by URL.
type Embed struct {
	URL string `json:"url"`
}

func (*Embed) CanHaveChildren() bool { return false }

func (e *Embed) HTML() *html.Node {
	return elAttr("a", []html.Attribute{attr("href", e.URL)}, text(e.URL))
}

// FileObject is the shared shape of media payloads: the URL lives under
// either "external" or "file" depending on where the asset is hosted.
type FileObject struct {
	Type     string     `json:"type"`
	External *Link      `json:"external,omitempty"`
	File     *Link      `json:"file,omitempty"`
	Caption  []RichText `json:"caption,omitempty"`
}

// URL returns the asset location regardless of hosting.
func (f *FileObject) URL() string {
	if f.External != nil {
		return f.External.URL
	}
	if f.File != nil {
		return f.File.URL
	}
	return ""
}

// Image embeds an image asset.
type Image struct {
	FileObject
}

func (*Image) CanHaveChildren() bool { return false }

func (i *Image) HTML() *html.Node {
	return elAttr("img", []html.Attribute{attr("src", i.URL())})
}

// Video links a video asset.
type Video struct {
	FileObject
}

func (*Video) CanHaveChildren() bool { return false }

func (v *Video) HTML() *html.Node {
	return elAttr("a", []html.Attribute{attr("href", v.URL())}, text(v.URL()))
}

// FileBlock links an uploaded file.
type FileBlock struct {
	FileObject
}

func (*FileBlock) CanHaveChildren() bool { return false }

func (f *FileBlock) HTML() *html.Node {
	return elAttr("a", []html.Attribute{attr("href", f.URL())}, text(f.URL()))
}

// PDF links a PDF asset.
type PDF struct {
	FileObject
}

func (*PDF) CanHaveChildren() bool { return false }

func (p *PDF) HTML() *html.Node {
	return elAttr("a", []html.Attribute{attr("href", p.URL())}, text(p.URL()))
}

// LinkPreview is a server-generated preview of a pasted URL.
type LinkPreview struct {
	URL string `json:"url"`
}

func (*LinkPreview) CanHaveChildren() bool { return false }

func (l *LinkPreview) HTML() *html.Node {
	return elAttr("a", []html.Attribute{attr("href", l.URL)}, text(l.URL))
}

// ChildPage marks a nested page. Only the title is carried inline;
// the page's content is a separate document.
type ChildPage struct {
	Title string `json:"title"`
}

func (*ChildPage) CanHaveChildren() bool { return true }

func (c *ChildPage) HTML() *html.Node {
	return el("p", text(c.Title))
}

// ChildDatabase marks a nested database.
type ChildDatabase struct {
	Title string `json:"title"`
}

func (*ChildDatabase) CanHaveChildren() bool { return true }

func (c *ChildDatabase) HTML() *html.Node {
	return el("p", text(c.Title))
}

// LinkToPage references another page or database without nesting it.
// The crawler follows these; the renderer has nothing to draw.
type LinkToPage struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
}

func (*LinkToPage) CanHaveChildren() bool { return false }

func (*LinkToPage) HTML() *html.Node { return nil }

// SyncedBlock wraps content mirrored elsewhere. The original carries the
// content as children; a duplicate stores only the source block id.
type SyncedBlock struct {
	SyncedFrom *SyncedFrom `json:"synced_from"`
}

// SyncedFrom identifies the original block of a duplicate synced block.
type SyncedFrom struct {
	Type    string `json:"type"`
	BlockID string `json:"block_id"`
}

// IsDuplicate reports whether this is a mirror of another block.
func (s *SyncedBlock) IsDuplicate() bool { return s.SyncedFrom != nil }

func (*SyncedBlock) CanHaveChildren() bool { return true }

func (*SyncedBlock) HTML() *html.Node { return nil }

// Table is the structural wrapper of table rows; the table builder
// assembles its markup.
type Table struct {
	TableWidth      int  `json:"table_width"`
	HasColumnHeader bool `json:"has_column_header"`
	HasRowHeader    bool `json:"has_row_header"`
}

func (*Table) CanHaveChildren() bool { return true }

func (*Table) HTML() *html.Node { return nil }

// TableRow holds one row of cells, each cell a run of rich text.
// IsHeader is flipped by the table builder when the table promotes its
// first row to a header.
type TableRow struct {
	Cells    [][]RichText `json:"cells"`
	IsHeader bool         `json:"-"`
}

func (*TableRow) CanHaveChildren() bool { return false }

func (r *TableRow) HTML() *html.Node {
	cellTag := "td"
	if r.IsHeader {
		cellTag = "th"
	}
	row := el("tr")
	for _, cell := range r.Cells {
		appendChildren(row, el(cellTag, richTextNodes(cell)...))
	}
	if r.IsHeader {
		return el("thead", row)
	}
	return row
}

// ColumnList is the structural wrapper of a multi-column layout.
type ColumnList struct{}

func (*ColumnList) CanHaveChildren() bool { return true }

func (*ColumnList) HTML() *html.Node { return nil }

// Column is one column inside a column list.
type Column struct{}

func (*Column) CanHaveChildren() bool { return true }

func (*Column) HTML() *html.Node { return nil }

// Breadcrumb renders the page's ancestor trail in the app; it carries
// no exportable content.
type Breadcrumb struct{}

func (*Breadcrumb) CanHaveChildren() bool { return false }

func (*Breadcrumb) HTML() *html.Node { return nil }

// TableOfContents is generated client-side from headings.
type TableOfContents struct {
	Color string `json:"color,omitempty"`
}

func (*TableOfContents) CanHaveChildren() bool { return false }

func (*TableOfContents) HTML() *html.Node { return nil }

// Unsupported is the API's explicit marker for block kinds it does not
// expose over the public API.
type Unsupported struct{}

func (*Unsupported) CanHaveChildren() bool { return false }

func (*Unsupported) HTML() *html.Node { return nil }
