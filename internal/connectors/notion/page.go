package notion

import (
	"encoding/json"
	"time"
)

// Page is the metadata snapshot of a Notion page: id, timestamps and the
// page-level property values (for pages living in a database, these are
// the row's cells).
type Page struct {
	ID             string
	URL            string
	CreatedTime    time.Time
	LastEditedTime time.Time
	Properties     map[string]PropertyValue
}

// Title returns the page title from its title property, if any.
func (p *Page) Title() string {
	for i := range p.Properties {
		v := p.Properties[i]
		if v.Type == "title" {
			return plainText(v.Title)
		}
	}
	return ""
}

// DecodePage decodes a page object.
func DecodePage(data []byte) (*Page, error) {
	var raw struct {
		ID             string                     `json:"id"`
		URL            string                     `json:"url"`
		CreatedTime    time.Time                  `json:"created_time"`
		LastEditedTime time.Time                  `json:"last_edited_time"`
		Properties     map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Kind: "page", Reason: err.Error()}
	}
	if raw.ID == "" {
		return nil, &DecodeError{Kind: "page", Reason: "missing id"}
	}

	props := make(map[string]PropertyValue, len(raw.Properties))
	for name, rawProp := range raw.Properties {
		v, err := DecodePropertyValue(rawProp)
		if err != nil {
			return nil, &DecodeError{BlockID: raw.ID, Kind: "page property " + name, Reason: err.Error()}
		}
		props[name] = v
	}

	return &Page{
		ID:             raw.ID,
		URL:            raw.URL,
		CreatedTime:    raw.CreatedTime,
		LastEditedTime: raw.LastEditedTime,
		Properties:     props,
	}, nil
}

// PropertySchema describes one column of a database.
type PropertySchema struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Database is the metadata snapshot of a Notion database: id, rich-text
// title and the property-name to schema mapping.
type Database struct {
	ID             string
	URL            string
	Title          []RichText
	CreatedTime    time.Time
	LastEditedTime time.Time
	Properties     map[string]PropertySchema
}

// PlainTitle returns the database title as plain text.
func (d *Database) PlainTitle() string {
	return plainText(d.Title)
}

// DecodeDatabase decodes a database object.
func DecodeDatabase(data []byte) (*Database, error) {
	var raw struct {
		ID             string                    `json:"id"`
		URL            string                    `json:"url"`
		Title          []RichText                `json:"title"`
		CreatedTime    time.Time                 `json:"created_time"`
		LastEditedTime time.Time                 `json:"last_edited_time"`
		Properties     map[string]PropertySchema `json:"properties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Kind: "database", Reason: err.Error()}
	}
	if raw.ID == "" {
		return nil, &DecodeError{Kind: "database", Reason: "missing id"}
	}

	return &Database{
		ID:             raw.ID,
		URL:            raw.URL,
		Title:          raw.Title,
		CreatedTime:    raw.CreatedTime,
		LastEditedTime: raw.LastEditedTime,
		Properties:     raw.Properties,
	}, nil
}

// Row is one result of a database query. A row is itself either a page
// or a nested database; exactly one of the fields is set.
type Row struct {
	Page     *Page
	Database *Database
}

// DecodeRow decodes one database query result by its object discriminator.
func DecodeRow(data []byte) (*Row, error) {
	var envelope struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &DecodeError{Kind: "row", Reason: err.Error()}
	}

	switch envelope.Object {
	case "page":
		page, err := DecodePage(data)
		if err != nil {
			return nil, err
		}
		return &Row{Page: page}, nil
	case "database":
		db, err := DecodeDatabase(data)
		if err != nil {
			return nil, err
		}
		return &Row{Database: db}, nil
	default:
		return nil, &DecodeError{Kind: "row", Reason: "unrecognised object: " + envelope.Object}
	}
}
