package notion

import (
	"golang.org/x/net/html"
)

// RichText is one styled run of inline text. Mentions carried inside a run
// are the atomic unit from which cross-references are discovered in table
// cells and paragraph text.
type RichText struct {
	Type        string      `json:"type"`
	PlainText   string      `json:"plain_text"`
	Href        string      `json:"href,omitempty"`
	Annotations Annotations `json:"annotations"`
	Text        *Text       `json:"text,omitempty"`
	Mention     *Mention    `json:"mention,omitempty"`
	Equation    *Equation   `json:"equation,omitempty"`
}

// Annotations are the styling flags of a rich text run.
type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color,omitempty"`
}

// Text is the payload of a plain text run.
type Text struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// Link is an inline hyperlink.
type Link struct {
	URL string `json:"url"`
}

// Equation is an inline LaTeX expression.
type Equation struct {
	Expression string `json:"expression"`
}

// Mention is an inline reference to a page, database, user or date.
// Page and database mentions store only the referenced id; the referent
// is never fetched eagerly.
type Mention struct {
	Type     string     `json:"type"`
	Page     *EntityRef `json:"page,omitempty"`
	Database *EntityRef `json:"database,omitempty"`
	User     *User      `json:"user,omitempty"`
	Date     *DateValue `json:"date,omitempty"`
}

// EntityRef is a bare reference to a remote page or database.
type EntityRef struct {
	ID string `json:"id"`
}

// User is a Notion workspace member or bot.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// DateValue is a date or date range.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// String renders the date range in a human-readable form.
func (d *DateValue) String() string {
	if d == nil {
		return ""
	}
	if d.End != "" {
		return d.Start + " - " + d.End
	}
	return d.Start
}

// HTML renders one rich text run. The plain text is wrapped per annotation
// and finally in an anchor when the run carries a link.
func (rt *RichText) HTML() *html.Node {
	if rt == nil {
		return nil
	}

	node := text(rt.PlainText)

	a := rt.Annotations
	if a.Code {
		node = el("code", node)
	}
	if a.Bold {
		node = el("b", node)
	}
	if a.Italic {
		node = el("i", node)
	}
	if a.Strikethrough {
		node = el("s", node)
	}
	if a.Underline {
		node = el("u", node)
	}

	if rt.Href != "" {
		node = elAttr("a", []html.Attribute{attr("href", rt.Href)}, node)
	}

	return node
}

// HTML renders a user as a link to their avatar when present.
func (u *User) HTML() *html.Node {
	if u == nil {
		return nil
	}
	if u.AvatarURL != "" {
		return elAttr("a", []html.Attribute{attr("href", u.AvatarURL)}, text(u.Name))
	}
	return el("div", text(u.Name))
}

// richTextNodes renders a slice of runs, skipping empty fragments.
func richTextNodes(rts []RichText) []*html.Node {
	nodes := make([]*html.Node, 0, len(rts))
	for i := range rts {
		if n := rts[i].HTML(); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// plainText concatenates the plain text of a slice of runs.
func plainText(rts []RichText) string {
	var s string
	for i := range rts {
		s += rts[i].PlainText
	}
	return s
}

// mentionRefs collects page and database references mentioned in a slice
// of rich text runs.
func mentionRefs(rts []RichText, refs *Refs) {
	for i := range rts {
		m := rts[i].Mention
		if m == nil {
			continue
		}
		switch m.Type {
		case "page":
			if m.Page != nil {
				refs.AddPage(m.Page.ID)
			}
		case "database":
			if m.Database != nil {
				refs.AddDatabase(m.Database.ID)
			}
		}
	}
}
