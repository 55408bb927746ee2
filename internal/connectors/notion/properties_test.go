package notion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cellMarkup(t *testing.T, v PropertyValue) string {
	t.Helper()
	node := v.HTML()
	require.NotNil(t, node)
	markup, err := renderHTML(node)
	require.NoError(t, err)
	return markup
}

func floatPtr(f float64) *float64 { return &f }

func TestPropertyValue_HTML(t *testing.T) {
	t.Run("title wraps runs in spans", func(t *testing.T) {
		v := PropertyValue{Type: "title", Title: rt("Launch")}
		assert.Equal(t, "<div><span>Launch</span></div>", cellMarkup(t, v))
	})

	t.Run("number formats without trailing zero", func(t *testing.T) {
		v := PropertyValue{Type: "number", Number: floatPtr(42)}
		assert.Equal(t, "<div>42</div>", cellMarkup(t, v))

		v = PropertyValue{Type: "number", Number: floatPtr(2.5)}
		assert.Equal(t, "<div>2.5</div>", cellMarkup(t, v))
	})

	t.Run("multi select joins names", func(t *testing.T) {
		v := PropertyValue{Type: "multi_select", MultiSelect: []SelectOption{
			{Name: "red"}, {Name: "blue"},
		}}
		assert.Equal(t, "<div>red, blue</div>", cellMarkup(t, v))
	})

	t.Run("status renders its name", func(t *testing.T) {
		v := PropertyValue{Type: "status", Status: &SelectOption{Name: "In progress"}}
		assert.Equal(t, "<div>In progress</div>", cellMarkup(t, v))
	})

	t.Run("date renders the range", func(t *testing.T) {
		v := PropertyValue{Type: "date", Date: &DateValue{Start: "2024-03-01", End: "2024-03-05"}}
		assert.Equal(t, "<div>2024-03-01 - 2024-03-05</div>", cellMarkup(t, v))
	})

	t.Run("checkbox always renders a value", func(t *testing.T) {
		v := PropertyValue{Type: "checkbox", Checkbox: false}
		assert.Equal(t, "<div>false</div>", cellMarkup(t, v))
	})

	t.Run("url renders an anchor", func(t *testing.T) {
		v := PropertyValue{Type: "url", URL: "https://example.com"}
		assert.Equal(t, `<a href="https://example.com">https://example.com</a>`, cellMarkup(t, v))
	})

	t.Run("unique id renders with prefix", func(t *testing.T) {
		v := PropertyValue{Type: "unique_id", UniqueID: &UniqueID{Number: 7, Prefix: "TASK"}}
		assert.Equal(t, "<div>TASK-7</div>", cellMarkup(t, v))
	})

	t.Run("relation lists referenced ids", func(t *testing.T) {
		v := PropertyValue{Type: "relation", Relation: []EntityRef{{ID: "r1"}, {ID: "r2"}}}
		assert.Equal(t, "<div><div>r1</div><div>r2</div></div>", cellMarkup(t, v))
	})

	t.Run("created time formats RFC3339", func(t *testing.T) {
		ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		v := PropertyValue{Type: "created_time", CreatedTime: &ts}
		assert.Equal(t, "<div>2024-06-01T12:00:00Z</div>", cellMarkup(t, v))
	})

	t.Run("empty values yield no fragment", func(t *testing.T) {
		for _, v := range []PropertyValue{
			{Type: "title"},
			{Type: "rich_text"},
			{Type: "number"},
			{Type: "select"},
			{Type: "multi_select"},
			{Type: "date"},
			{Type: "url"},
			{Type: "relation"},
			{Type: "files"},
		} {
			assert.Nil(t, v.HTML(), "type %s", v.Type)
		}
	})

	t.Run("unknown property type yields no fragment", func(t *testing.T) {
		v := PropertyValue{Type: "quantum_state"}
		assert.Nil(t, v.HTML())
	})
}

func TestFormula_String(t *testing.T) {
	s := "done"
	b := true

	t.Run("string result", func(t *testing.T) {
		f := &Formula{Type: "string", Str: &s}
		assert.Equal(t, "done", f.String())
	})

	t.Run("number result", func(t *testing.T) {
		f := &Formula{Type: "number", Number: floatPtr(3)}
		assert.Equal(t, "3", f.String())
	})

	t.Run("boolean result", func(t *testing.T) {
		f := &Formula{Type: "boolean", Boolean: &b}
		assert.Equal(t, "true", f.String())
	})

	t.Run("date result", func(t *testing.T) {
		f := &Formula{Type: "date", Date: &DateValue{Start: "2024-01-01"}}
		assert.Equal(t, "2024-01-01", f.String())
	})

	t.Run("empty result", func(t *testing.T) {
		f := &Formula{Type: "string"}
		assert.Equal(t, "", f.String())
	})
}

func TestRollup_HTML(t *testing.T) {
	t.Run("number rollup", func(t *testing.T) {
		v := PropertyValue{Type: "rollup", Rollup: &Rollup{Type: "number", Number: floatPtr(10)}}
		assert.Equal(t, "<div>10</div>", cellMarkup(t, v))
	})

	t.Run("array rollup renders member cells", func(t *testing.T) {
		v := PropertyValue{Type: "rollup", Rollup: &Rollup{Type: "array", Array: []PropertyValue{
			{Type: "number", Number: floatPtr(1)},
			{Type: "rich_text", RichText: rt("tag")},
		}}}
		markup := cellMarkup(t, v)
		assert.Contains(t, markup, "<div>1</div>")
		assert.Contains(t, markup, "tag")
	})

	t.Run("empty rollup yields no fragment", func(t *testing.T) {
		v := PropertyValue{Type: "rollup", Rollup: &Rollup{Type: "array"}}
		assert.Nil(t, v.HTML())
	})
}

func TestDecodePropertyValue(t *testing.T) {
	t.Run("decodes a select cell", func(t *testing.T) {
		data := []byte(`{"id": "x", "type": "select", "select": {"name": "High", "color": "red"}}`)

		v, err := DecodePropertyValue(data)
		require.NoError(t, err)

		assert.Equal(t, "select", v.Type)
		require.NotNil(t, v.Select)
		assert.Equal(t, "High", v.Select.Name)
	})

	t.Run("unknown type decodes without error", func(t *testing.T) {
		data := []byte(`{"id": "x", "type": "quantum_state"}`)

		v, err := DecodePropertyValue(data)
		require.NoError(t, err)

		assert.Equal(t, "quantum_state", v.Type)
		assert.Nil(t, v.HTML())
	})
}
