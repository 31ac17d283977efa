package validation

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/jsonschema"
)

// ValidateDocument reports whether a pasted schema and UI schema would import
// cleanly, without touching any session. A nil rawUI is treated as "{}".
func ValidateDocument(rawSchema, rawUI []byte) Result {
	doc, err := jsonschema.ParseDocument(rawSchema)
	if err != nil {
		return invalid(issueFromError(err))
	}
	if rawUI == nil {
		rawUI = []byte("{}")
	}
	ui, err := jsonschema.ParseUISchema(rawUI)
	if err != nil {
		return invalid(issueFromError(err))
	}
	if _, err := jsonschema.Import(doc, ui); err != nil {
		return invalid(issueFromError(err))
	}
	return Result{Valid: true}
}

func issueFromError(err error) Issue {
	var unsupported *jsonschema.UnsupportedTypeError
	if errors.As(err, &unsupported) {
		path := "#/properties/" + escapePointer(unsupported.Property) + "/type"
		return Issue{
			Field:   fieldFromPointer(path),
			Path:    path,
			Message: strings.TrimPrefix(err.Error(), "jsonschema: "),
		}
	}
	return Issue{Message: strings.TrimPrefix(strings.TrimSpace(err.Error()), "jsonschema: ")}
}

func escapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~", "~0")
	return strings.ReplaceAll(segment, "/", "~1")
}

// fieldFromPointer maps "#/properties/a~1b/type" to "a/b".
func fieldFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(pointer, "#"), "/")
	parts := strings.Split(trimmed, "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "properties" {
			segment := strings.ReplaceAll(parts[i+1], "~1", "/")
			return strings.ReplaceAll(segment, "~0", "~")
		}
	}
	return ""
}
