package validation

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/jsonschema"
)

// ValidateSubmission checks submitted form values against doc. Empty strings
// count as absent so that required fields report a missing value. String
// values for number properties are parsed before validation, matching what a
// browser form posts.
func ValidateSubmission(doc jsonschema.Document, values map[string]any) Result {
	schema := Schema(doc)
	payload := coerce(doc, values)

	err := schema.VisitJSON(payload, openapi3.MultiErrors())
	if err == nil {
		return Result{Valid: true}
	}

	var issues []Issue
	collectIssues(err, &issues)
	sortIssues(doc, issues)
	return invalid(issues...)
}

func coerce(doc jsonschema.Document, values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for name, value := range values {
		if s, ok := value.(string); ok {
			if strings.TrimSpace(s) == "" {
				continue
			}
			if isNumber(doc, name) {
				if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
					out[name] = f
					continue
				}
			}
		}
		if n, ok := value.(int); ok {
			out[name] = float64(n)
			continue
		}
		out[name] = value
	}
	return out
}

func isNumber(doc jsonschema.Document, name string) bool {
	if doc.Properties == nil {
		return false
	}
	prop, ok := doc.Properties.Get(name)
	return ok && prop.Type == "number"
}

func collectIssues(err error, issues *[]Issue) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collectIssues(inner, issues)
		}
		return
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := schemaErr.JSONPointer()
		issue := Issue{Message: strings.TrimSpace(schemaErr.Reason)}
		if len(pointer) > 0 {
			issue.Field = pointer[0]
			issue.Path = "/" + strings.Join(pointer, "/")
		} else if schemaErr.SchemaField == "required" {
			issue.Field = quotedName(schemaErr.Reason)
			if issue.Field != "" {
				issue.Path = "/" + issue.Field
			}
		}
		*issues = append(*issues, issue)
		return
	}

	*issues = append(*issues, Issue{Message: err.Error()})
}

// quotedName extracts the first double quoted token of msg.
func quotedName(msg string) string {
	start := strings.IndexByte(msg, '"')
	if start < 0 {
		return ""
	}
	name, err := strconv.QuotedPrefix(msg[start:])
	if err != nil {
		return ""
	}
	unquoted, err := strconv.Unquote(name)
	if err != nil {
		return ""
	}
	return unquoted
}

// sortIssues orders issues by property position so output is stable.
func sortIssues(doc jsonschema.Document, issues []Issue) {
	rank := make(map[string]int)
	if doc.Properties != nil {
		for i, name := range doc.Properties.Keys() {
			rank[name] = i
		}
	}
	position := func(field string) int {
		if i, ok := rank[field]; ok {
			return i
		}
		return len(rank)
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return position(issues[i].Field) < position(issues[j].Field)
	})
}
