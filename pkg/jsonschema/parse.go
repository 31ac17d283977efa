package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

const (
	docSchema   = "schema"
	docUISchema = "uiSchema"
)

// ParseDocument decodes JSON Schema text. The properties object is required;
// its key order is kept.
func ParseDocument(raw []byte) (Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Document{}, &ParseError{Document: docSchema, Err: errors.New("document is empty")}
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return Document{}, &ParseError{Document: docSchema, Err: err}
	}
	if doc.Properties == nil {
		return Document{}, &ParseError{Document: docSchema, Err: errors.New("properties is required")}
	}
	return doc, nil
}

// ParseUISchema decodes UI schema text. Entries whose value is not an object,
// such as a root level "ui:order" list, are ignored, as are unknown hint keys.
func ParseUISchema(raw []byte) (UISchema, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &ParseError{Document: docUISchema, Err: errors.New("document is empty")}
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, &ParseError{Document: docUISchema, Err: err}
	}

	out := make(UISchema, len(entries))
	for name, payload := range entries {
		body := bytes.TrimSpace(payload)
		if len(body) == 0 || body[0] != '{' {
			continue
		}
		var hints field.UIHints
		if err := json.Unmarshal(body, &hints); err != nil {
			return nil, &ParseError{Document: docUISchema, Err: err}
		}
		out[name] = &hints
	}
	return out, nil
}

// MarshalIndent renders a document for display with two-space indentation.
func MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
