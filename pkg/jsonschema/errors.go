package jsonschema

import "fmt"

// ParseError reports malformed input text. Document names which of the two
// import payloads failed: "schema" or "uiSchema".
type ParseError struct {
	Document string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonschema: parse %s: %v", e.Document, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError reports a property whose JSON-Schema type has no field
// kind mapping.
type UnsupportedTypeError struct {
	Property string
	Type     string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("jsonschema: unsupported type %q for property %q", e.Type, e.Property)
}
