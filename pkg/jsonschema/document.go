package jsonschema

import (
	"bytes"
	"encoding/json"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// Document is the exported JSON Schema. Required is omitted entirely when no
// field is required.
type Document struct {
	Type       string      `json:"type"`
	Properties *Properties `json:"properties"`
	Required   []string    `json:"required,omitempty"`
}

// NewDocument returns an empty object schema.
func NewDocument() Document {
	return Document{Type: "object", Properties: NewProperties()}
}

// IsRequired reports whether name appears in the required list.
func (d Document) IsRequired(name string) bool {
	for _, candidate := range d.Required {
		if candidate == name {
			return true
		}
	}
	return false
}

// Property describes one field of the exported schema.
type Property struct {
	Type        string   `json:"type"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Format      string   `json:"format,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
}

// UnmarshalJSON accepts any well-formed "type" and "enum". A type that is not
// a JSON string (a type list, a number) keeps its compact JSON text so Import
// can report it as unsupported. Enum values that are not strings become their
// compact JSON text, so [1, true] reads as ["1", "true"].
func (p *Property) UnmarshalJSON(data []byte) error {
	type plain Property
	var raw struct {
		plain
		Type json.RawMessage   `json:"type"`
		Enum []json.RawMessage `json:"enum"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Property(raw.plain)

	typ, err := scalarText(raw.Type)
	if err != nil {
		return err
	}
	out.Type = typ

	if raw.Enum != nil {
		out.Enum = make([]string, len(raw.Enum))
		for i, value := range raw.Enum {
			text, err := scalarText(value)
			if err != nil {
				return err
			}
			out.Enum[i] = text
		}
	}
	*p = out
	return nil
}

// scalarText returns a JSON string's value, or the compact text of any other
// JSON value. Absent input yields "".
func scalarText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// UISchema maps field names to their UI hints. Only fields that carry hints
// have an entry.
type UISchema map[string]*field.UIHints

// Hints returns the hints stored for name, or nil.
func (u UISchema) Hints(name string) *field.UIHints {
	if u == nil {
		return nil
	}
	return u[name]
}
