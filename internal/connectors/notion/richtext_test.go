package notion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderRun(t *testing.T, run RichText) string {
	t.Helper()
	node := run.HTML()
	require.NotNil(t, node)
	markup, err := renderHTML(node)
	require.NoError(t, err)
	return markup
}

func TestRichText_HTML(t *testing.T) {
	t.Run("plain run is bare text", func(t *testing.T) {
		run := RichText{Type: "text", PlainText: "plain"}
		assert.Equal(t, "plain", renderRun(t, run))
	})

	t.Run("each annotation wraps once", func(t *testing.T) {
		for _, tc := range []struct {
			name string
			ann  Annotations
			want string
		}{
			{"bold", Annotations{Bold: true}, "<b>x</b>"},
			{"italic", Annotations{Italic: true}, "<i>x</i>"},
			{"strikethrough", Annotations{Strikethrough: true}, "<s>x</s>"},
			{"underline", Annotations{Underline: true}, "<u>x</u>"},
			{"code", Annotations{Code: true}, "<code>x</code>"},
		} {
			t.Run(tc.name, func(t *testing.T) {
				run := RichText{PlainText: "x", Annotations: tc.ann}
				assert.Equal(t, tc.want, renderRun(t, run))
			})
		}
	})

	t.Run("link wraps outermost", func(t *testing.T) {
		run := RichText{
			PlainText:   "docs",
			Href:        "https://example.com",
			Annotations: Annotations{Bold: true},
		}
		assert.Equal(t, `<a href="https://example.com"><b>docs</b></a>`, renderRun(t, run))
	})

	t.Run("special characters escape at render time", func(t *testing.T) {
		run := RichText{PlainText: "a < b & c"}
		assert.Equal(t, "a &lt; b &amp; c", renderRun(t, run))
	})
}

func TestPlainText(t *testing.T) {
	runs := []RichText{
		{PlainText: "one "},
		{PlainText: "two"},
	}
	assert.Equal(t, "one two", plainText(runs))
	assert.Equal(t, "", plainText(nil))
}

func TestMentionRefs(t *testing.T) {
	t.Run("collects page and database mentions", func(t *testing.T) {
		runs := []RichText{
			{Type: "text", PlainText: "see "},
			{Type: "mention", Mention: &Mention{Type: "page", Page: &EntityRef{ID: "p1"}}},
			{Type: "mention", Mention: &Mention{Type: "database", Database: &EntityRef{ID: "d1"}}},
			{Type: "mention", Mention: &Mention{Type: "user", User: &User{ID: "u1"}}},
		}

		var refs Refs
		mentionRefs(runs, &refs)

		assert.Equal(t, []string{"p1"}, refs.Pages)
		assert.Equal(t, []string{"d1"}, refs.Databases)
	})

	t.Run("duplicate mentions collapse", func(t *testing.T) {
		runs := []RichText{
			{Type: "mention", Mention: &Mention{Type: "page", Page: &EntityRef{ID: "p1"}}},
			{Type: "mention", Mention: &Mention{Type: "page", Page: &EntityRef{ID: "p1"}}},
		}

		var refs Refs
		mentionRefs(runs, &refs)

		assert.Equal(t, []string{"p1"}, refs.Pages)
	})
}

func TestDateValue_String(t *testing.T) {
	assert.Equal(t, "2024-01-01", (&DateValue{Start: "2024-01-01"}).String())
	assert.Equal(t, "2024-01-01 - 2024-02-01", (&DateValue{Start: "2024-01-01", End: "2024-02-01"}).String())
	var d *DateValue
	assert.Equal(t, "", d.String())
}

func TestRefs_Merge(t *testing.T) {
	a := Refs{Pages: []string{"p1"}, Databases: []string{"d1"}}
	b := Refs{Pages: []string{"p1", "p2"}, Databases: []string{"d2"}}

	a.Merge(b)

	assert.Equal(t, []string{"p1", "p2"}, a.Pages)
	assert.Equal(t, []string{"d1", "d2"}, a.Databases)
}
