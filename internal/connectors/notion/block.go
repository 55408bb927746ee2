package notion

import (
	"encoding/json"
	"time"

	"golang.org/x/net/html"
)

// Block is one node in a document's content tree: an opaque remote id,
// a discriminated payload, and the children flags reported by the API.
// Blocks are read-only snapshots owned by the traversal that fetched them.
type Block struct {
	ID             string
	Type           string
	HasChildren    bool
	CreatedTime    time.Time
	LastEditedTime time.Time
	Payload        Payload
}

// Payload is the kind-specific content of a block. Structural-only kinds
// (table, column list, synced block wrappers) return a nil fragment from
// HTML because their visual content is entirely their children, assembled
// by the renderer.
type Payload interface {
	// CanHaveChildren reports whether this block kind may nest children.
	// Static per kind.
	CanHaveChildren() bool

	// HTML renders the block's own markup fragment, or nil.
	HTML() *html.Node
}

// payloadDecoder constructs one concrete variant from the raw payload
// found under the block's discriminator key.
type payloadDecoder func(raw json.RawMessage) (Payload, error)

// blockDecoders maps the type discriminator to its variant constructor.
// An unrecognised discriminator is a DecodeError: silently dropping a kind
// would hide content, and the API declares unknown-to-client kinds as
// "unsupported" explicitly.
var blockDecoders = map[string]payloadDecoder{
	"paragraph":          decodeInto(func() Payload { return &Paragraph{} }),
	"heading_1":          decodeHeading(1),
	"heading_2":          decodeHeading(2),
	"heading_3":          decodeHeading(3),
	"bulleted_list_item": decodeInto(func() Payload { return &BulletedListItem{} }),
	"numbered_list_item": decodeInto(func() Payload { return &NumberedListItem{} }),
	"to_do":              decodeInto(func() Payload { return &ToDo{} }),
	"toggle":             decodeInto(func() Payload { return &Toggle{} }),
	"quote":              decodeInto(func() Payload { return &Quote{} }),
	"callout":            decodeInto(func() Payload { return &Callout{} }),
	"code":               decodeInto(func() Payload { return &Code{} }),
	"divider":            decodeInto(func() Payload { return &Divider{} }),
	"equation":           decodeInto(func() Payload { return &EquationBlock{} }),
	"bookmark":           decodeInto(func() Payload { return &Bookmark{} }),
	"embed":              decodeInto(func() Payload { return &Embed{} }),
	"image":              decodeInto(func() Payload { return &Image{} }),
	"video":              decodeInto(func() Payload { return &Video{} }),
	"file":               decodeInto(func() Payload { return &FileBlock{} }),
	"pdf":                decodeInto(func() Payload { return &PDF{} }),
	"link_preview":       decodeInto(func() Payload { return &LinkPreview{} }),
	"child_page":         decodeInto(func() Payload { return &ChildPage{} }),
	"child_database":     decodeInto(func() Payload { return &ChildDatabase{} }),
	"link_to_page":       decodeInto(func() Payload { return &LinkToPage{} }),
	"synced_block":       decodeInto(func() Payload { return &SyncedBlock{} }),
	"table":              decodeInto(func() Payload { return &Table{} }),
	"table_row":          decodeInto(func() Payload { return &TableRow{} }),
	"column_list":        decodeInto(func() Payload { return &ColumnList{} }),
	"column":             decodeInto(func() Payload { return &Column{} }),
	"breadcrumb":         decodeInto(func() Payload { return &Breadcrumb{} }),
	"table_of_contents":  decodeInto(func() Payload { return &TableOfContents{} }),
	"unsupported":        decodeInto(func() Payload { return &Unsupported{} }),
}

// decodeInto builds a decoder that unmarshals the raw payload into a
// freshly constructed variant.
func decodeInto(newPayload func() Payload) payloadDecoder {
	return func(raw json.RawMessage) (Payload, error) {
		p := newPayload()
		if err := json.Unmarshal(raw, p); err != nil {
			return nil, err
		}
		return p, nil
	}
}

// decodeHeading builds a decoder for one of the three heading levels.
func decodeHeading(level int) payloadDecoder {
	return func(raw json.RawMessage) (Payload, error) {
		h := &Heading{Level: level}
		if err := json.Unmarshal(raw, h); err != nil {
			return nil, err
		}
		return h, nil
	}
}

// DecodeBlock constructs the one concrete block variant matching the
// payload's type discriminator. An unrecognised discriminator or an
// absent payload field yields a DecodeError.
func DecodeBlock(data []byte) (*Block, error) {
	var envelope struct {
		ID             string    `json:"id"`
		Type           string    `json:"type"`
		HasChildren    bool      `json:"has_children"`
		CreatedTime    time.Time `json:"created_time"`
		LastEditedTime time.Time `json:"last_edited_time"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &DecodeError{Kind: "block", Reason: err.Error()}
	}
	if envelope.Type == "" {
		return nil, &DecodeError{BlockID: envelope.ID, Kind: "block", Reason: "missing type discriminator"}
	}

	decoder, ok := blockDecoders[envelope.Type]
	if !ok {
		return nil, &DecodeError{BlockID: envelope.ID, Kind: envelope.Type, Reason: "unrecognised block type"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &DecodeError{BlockID: envelope.ID, Kind: envelope.Type, Reason: err.Error()}
	}
	raw, ok := fields[envelope.Type]
	if !ok {
		return nil, &DecodeError{BlockID: envelope.ID, Kind: envelope.Type, Reason: "missing payload field"}
	}

	payload, err := decoder(raw)
	if err != nil {
		return nil, &DecodeError{BlockID: envelope.ID, Kind: envelope.Type, Reason: err.Error()}
	}

	return &Block{
		ID:             envelope.ID,
		Type:           envelope.Type,
		HasChildren:    envelope.HasChildren,
		CreatedTime:    envelope.CreatedTime,
		LastEditedTime: envelope.LastEditedTime,
		Payload:        payload,
	}, nil
}
