package notion

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// PropertyValue is one database cell: a property value of a page (or
// nested database) row. Cells decode by their own type discriminator and
// render independently of one another. Unknown property types decode to
// an empty cell rather than failing: the property schema evolves
// server-side more often than the block vocabulary.
type PropertyValue struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	Title          []RichText     `json:"title,omitempty"`
	RichText       []RichText     `json:"rich_text,omitempty"`
	Number         *float64       `json:"number,omitempty"`
	Select         *SelectOption  `json:"select,omitempty"`
	MultiSelect    []SelectOption `json:"multi_select,omitempty"`
	Status         *SelectOption  `json:"status,omitempty"`
	Date           *DateValue     `json:"date,omitempty"`
	People         []User         `json:"people,omitempty"`
	Checkbox       bool           `json:"checkbox,omitempty"`
	URL            string         `json:"url,omitempty"`
	Email          string         `json:"email,omitempty"`
	PhoneNumber    string         `json:"phone_number,omitempty"`
	Formula        *Formula       `json:"formula,omitempty"`
	Relation       []EntityRef    `json:"relation,omitempty"`
	Rollup         *Rollup        `json:"rollup,omitempty"`
	Files          []FileObject   `json:"files,omitempty"`
	CreatedTime    *time.Time     `json:"created_time,omitempty"`
	LastEditedTime *time.Time     `json:"last_edited_time,omitempty"`
	CreatedBy      *User          `json:"created_by,omitempty"`
	LastEditedBy   *User          `json:"last_edited_by,omitempty"`
	UniqueID       *UniqueID      `json:"unique_id,omitempty"`
	Verification   *Verification  `json:"verification,omitempty"`
}

// SelectOption is one choice of a select, multi-select or status property.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Formula is a computed property value.
type Formula struct {
	Type    string     `json:"type"`
	Str     *string    `json:"string,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Boolean *bool      `json:"boolean,omitempty"`
	Date    *DateValue `json:"date,omitempty"`
}

// String renders the formula result as text.
func (f *Formula) String() string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case "string":
		if f.Str != nil {
			return *f.Str
		}
	case "number":
		if f.Number != nil {
			return formatNumber(*f.Number)
		}
	case "boolean":
		if f.Boolean != nil {
			return strconv.FormatBool(*f.Boolean)
		}
	case "date":
		return f.Date.String()
	}
	return ""
}

// Rollup aggregates values from a relation.
type Rollup struct {
	Type   string          `json:"type"`
	Number *float64        `json:"number,omitempty"`
	Date   *DateValue      `json:"date,omitempty"`
	Array  []PropertyValue `json:"array,omitempty"`
}

// UniqueID is an auto-incrementing identifier property.
type UniqueID struct {
	Number int64  `json:"number"`
	Prefix string `json:"prefix,omitempty"`
}

// String renders the id with its prefix, e.g. "TASK-42".
func (u *UniqueID) String() string {
	n := strconv.FormatInt(u.Number, 10)
	if u.Prefix != "" {
		return u.Prefix + "-" + n
	}
	return n
}

// Verification records a page's verified state.
type Verification struct {
	State      string     `json:"state"`
	VerifiedBy *User      `json:"verified_by,omitempty"`
	Date       *DateValue `json:"date,omitempty"`
}

// DecodePropertyValue decodes one cell.
func DecodePropertyValue(data []byte) (PropertyValue, error) {
	var v PropertyValue
	if err := json.Unmarshal(data, &v); err != nil {
		return PropertyValue{}, err
	}
	return v, nil
}

// HTML renders the cell's markup fragment, or nil when the cell is empty.
func (v *PropertyValue) HTML() *html.Node {
	switch v.Type {
	case "title":
		if len(v.Title) == 0 {
			return nil
		}
		return richTextDiv(v.Title)
	case "rich_text":
		if len(v.RichText) == 0 {
			return nil
		}
		return richTextDiv(v.RichText)
	case "number":
		if v.Number == nil {
			return nil
		}
		return el("div", text(formatNumber(*v.Number)))
	case "select":
		if v.Select == nil {
			return nil
		}
		return el("div", text(v.Select.Name))
	case "multi_select":
		if len(v.MultiSelect) == 0 {
			return nil
		}
		names := make([]string, 0, len(v.MultiSelect))
		for _, opt := range v.MultiSelect {
			names = append(names, opt.Name)
		}
		return el("div", text(strings.Join(names, ", ")))
	case "status":
		if v.Status == nil {
			return nil
		}
		return el("div", text(v.Status.Name))
	case "date":
		if v.Date == nil {
			return nil
		}
		return el("div", text(v.Date.String()))
	case "people":
		if len(v.People) == 0 {
			return nil
		}
		people := el("div")
		for i := range v.People {
			appendChildren(people, v.People[i].HTML())
		}
		return people
	case "checkbox":
		return el("div", text(strconv.FormatBool(v.Checkbox)))
	case "url":
		if v.URL == "" {
			return nil
		}
		return elAttr("a", []html.Attribute{attr("href", v.URL)}, text(v.URL))
	case "email":
		if v.Email == "" {
			return nil
		}
		return el("div", text(v.Email))
	case "phone_number":
		if v.PhoneNumber == "" {
			return nil
		}
		return el("div", text(v.PhoneNumber))
	case "formula":
		s := v.Formula.String()
		if s == "" {
			return nil
		}
		return el("div", text(s))
	case "relation":
		if len(v.Relation) == 0 {
			return nil
		}
		rel := el("div")
		for _, ref := range v.Relation {
			appendChildren(rel, el("div", text(ref.ID)))
		}
		return rel
	case "rollup":
		return v.rollupHTML()
	case "files":
		if len(v.Files) == 0 {
			return nil
		}
		files := el("div")
		for i := range v.Files {
			if url := v.Files[i].URL(); url != "" {
				appendChildren(files, elAttr("a", []html.Attribute{attr("href", url)}, text(url)))
			}
		}
		return files
	case "created_time":
		if v.CreatedTime == nil {
			return nil
		}
		return el("div", text(v.CreatedTime.Format(time.RFC3339)))
	case "last_edited_time":
		if v.LastEditedTime == nil {
			return nil
		}
		return el("div", text(v.LastEditedTime.Format(time.RFC3339)))
	case "created_by":
		return v.CreatedBy.HTML()
	case "last_edited_by":
		return v.LastEditedBy.HTML()
	case "unique_id":
		if v.UniqueID == nil {
			return nil
		}
		return el("div", text(v.UniqueID.String()))
	case "verification":
		if v.Verification == nil {
			return nil
		}
		return el("div", text(v.Verification.State))
	default:
		return nil
	}
}

// rollupHTML renders a rollup by its aggregate type. Array rollups render
// each member cell in sequence.
func (v *PropertyValue) rollupHTML() *html.Node {
	r := v.Rollup
	if r == nil {
		return nil
	}
	switch r.Type {
	case "number":
		if r.Number == nil {
			return nil
		}
		return el("div", text(formatNumber(*r.Number)))
	case "date":
		if r.Date == nil {
			return nil
		}
		return el("div", text(r.Date.String()))
	case "array":
		if len(r.Array) == 0 {
			return nil
		}
		wrapper := el("div")
		for i := range r.Array {
			appendChildren(wrapper, r.Array[i].HTML())
		}
		return wrapper
	}
	return nil
}

// richTextDiv wraps rendered runs in spans inside a div, the cell-level
// framing used for text-bearing properties.
func richTextDiv(rts []RichText) *html.Node {
	div := el("div")
	for i := range rts {
		if n := rts[i].HTML(); n != nil {
			appendChildren(div, el("span", n))
		}
	}
	return div
}

// formatNumber renders a float without a trailing ".0" for integers.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
