package jsonschema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func mustParse(t *testing.T, schemaText, uiText string) (Document, UISchema) {
	t.Helper()
	doc, err := ParseDocument([]byte(schemaText))
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	ui, err := ParseUISchema([]byte(uiText))
	if err != nil {
		t.Fatalf("parse ui schema: %v", err)
	}
	return doc, ui
}

func TestImport_ObjectBecomesFile(t *testing.T) {
	doc, ui := mustParse(t, `{"type":"object","properties":{"x":{"type":"object","title":"X"}}}`, `{}`)
	got, err := Import(doc, ui)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := fieldlist.List{{Kind: field.KindFile, Name: "x", Label: "X"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_KindMapping(t *testing.T) {
	schemaText := `{
  "type": "object",
  "properties": {
    "plain": {"type": "string"},
    "long": {"type": "string"},
    "count": {"type": "number"},
    "agree": {"type": "boolean"},
    "tags": {"type": "array"},
    "upload": {"type": "object"},
    "choice": {"type": "string", "enum": ["a", "b"]},
    "pick": {"type": "string", "enum": ["a", "b"]}
  }
}`
	uiText := `{"long":{"ui:widget":"textarea"},"pick":{"ui:widget":"radio"}}`
	doc, ui := mustParse(t, schemaText, uiText)

	got, err := Import(doc, ui)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := map[string]field.Kind{
		"plain":  field.KindText,
		"long":   field.KindTextarea,
		"count":  field.KindNumber,
		"agree":  field.KindCheckbox,
		"tags":   field.KindSelect,
		"upload": field.KindFile,
		"choice": field.KindSelect,
		"pick":   field.KindRadio,
	}
	wantOrder := []string{"plain", "long", "count", "agree", "tags", "upload", "choice", "pick"}
	if diff := cmp.Diff(wantOrder, got.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	for _, d := range got {
		if d.Kind != want[d.Name] {
			t.Fatalf("%s: kind %s, want %s", d.Name, d.Kind, want[d.Name])
		}
		if d.Label != d.Name {
			t.Fatalf("%s: label should fall back to key, got %q", d.Name, d.Label)
		}
	}
}

func TestImport_UnsupportedTypeAborts(t *testing.T) {
	for _, typ := range []string{"integer", "null", ""} {
		t.Run(typ, func(t *testing.T) {
			schemaText := `{"type":"object","properties":{"ok":{"type":"string"},"bad":{"type":"` + typ + `"}}}`
			doc, ui := mustParse(t, schemaText, `{}`)
			got, err := Import(doc, ui)
			var unsupported *UnsupportedTypeError
			if !errors.As(err, &unsupported) {
				t.Fatalf("expected UnsupportedTypeError, got %v", err)
			}
			if unsupported.Type != typ || unsupported.Property != "bad" {
				t.Fatalf("unexpected error details: %+v", unsupported)
			}
			if got != nil {
				t.Fatalf("expected no partial result, got %v", got.Names())
			}
		})
	}
}

func TestImport_NonStringTypeIsUnsupported(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "type list", raw: `["string", "null"]`, want: `["string","null"]`},
		{name: "number", raw: `3`, want: `3`},
		{name: "object", raw: `{"x": 1}`, want: `{"x":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			schemaText := `{"type":"object","properties":{"ok":{"type":"string"},"bad":{"type":` + tc.raw + `}}}`
			doc, ui := mustParse(t, schemaText, `{}`)
			got, err := Import(doc, ui)
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				t.Fatalf("well-formed schema reported as parse error: %v", err)
			}
			var unsupported *UnsupportedTypeError
			if !errors.As(err, &unsupported) {
				t.Fatalf("expected UnsupportedTypeError, got %v", err)
			}
			if unsupported.Type != tc.want || unsupported.Property != "bad" {
				t.Fatalf("unexpected error details: %+v", unsupported)
			}
			if got != nil {
				t.Fatalf("expected no partial result, got %v", got.Names())
			}
		})
	}
}

func TestImport_NonStringEnumValues(t *testing.T) {
	schemaText := `{
  "type": "object",
  "properties": {
    "size": {"type": "number", "enum": [1, 2.5]},
    "flag": {"type": "boolean", "enum": [true, false]},
    "mixed": {"type": "string", "enum": ["a", 1, null]}
  }
}`
	doc, ui := mustParse(t, schemaText, `{}`)
	got, err := Import(doc, ui)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := map[string][]field.Option{
		"size":  {{Label: "1", Value: "1"}, {Label: "2.5", Value: "2.5"}},
		"flag":  {{Label: "true", Value: "true"}, {Label: "false", Value: "false"}},
		"mixed": {{Label: "a", Value: "a"}, {Label: "1", Value: "1"}, {Label: "null", Value: "null"}},
	}
	for _, d := range got {
		if diff := cmp.Diff(want[d.Name], d.Options); diff != "" {
			t.Fatalf("%s options mismatch (-want +got):\n%s", d.Name, diff)
		}
	}
	if got[0].Kind != field.KindNumber || got[1].Kind != field.KindCheckbox || got[2].Kind != field.KindSelect {
		t.Fatalf("unexpected kinds: %v %v %v", got[0].Kind, got[1].Kind, got[2].Kind)
	}
}

func TestImport_ValidationPlaceholderAndOptions(t *testing.T) {
	schemaText := `{
  "type": "object",
  "properties": {
    "age": {"type": "number", "title": "Age", "minimum": 0, "maximum": 99},
    "code": {"type": "string", "description": "ABC-123", "minLength": 2, "maxLength": 8, "pattern": "^[A-Z]"},
    "color": {"type": "string", "enum": ["red", "blue"]}
  },
  "required": ["age"]
}`
	uiText := `{"code":{"ui:placeholder":"Type a code","ui:autofocus":true}}`
	doc, ui := mustParse(t, schemaText, uiText)

	got, err := Import(doc, ui)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := fieldlist.List{
		{
			Kind:       field.KindNumber,
			Name:       "age",
			Label:      "Age",
			Validation: field.Validation{Required: true, Min: field.Float(0), Max: field.Float(99)},
		},
		{
			Kind:        field.KindText,
			Name:        "code",
			Label:       "code",
			Placeholder: "Type a code",
			Validation:  field.Validation{MinLength: field.Int(2), MaxLength: field.Int(8), Pattern: "^[A-Z]"},
			UIHints:     &field.UIHints{Placeholder: "Type a code", Autofocus: true},
		},
		{
			Kind:    field.KindSelect,
			Name:    "color",
			Label:   "color",
			Options: []field.Option{{Label: "red", Value: "red"}, {Label: "blue", Value: "blue"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name   string
		schema string
		ui     string
		doc    string
	}{
		{"malformed schema", `{"type":`, `{}`, "schema"},
		{"empty schema", ``, `{}`, "schema"},
		{"missing properties", `{"type":"object"}`, `{}`, "schema"},
		{"malformed ui", `{"properties":{}}`, `{nope}`, "uiSchema"},
		{"empty ui", `{"properties":{}}`, `  `, "uiSchema"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tc.schema))
			if err == nil {
				_, err = ParseUISchema([]byte(tc.ui))
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if parseErr.Document != tc.doc {
				t.Fatalf("document mismatch: want %s, got %s", tc.doc, parseErr.Document)
			}
		})
	}
}

func TestParseUISchema_IgnoresNonObjectEntries(t *testing.T) {
	ui, err := ParseUISchema([]byte(`{"ui:order":["b","a"],"a":{"ui:widget":"textarea","x-unknown":1}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ui) != 1 || ui.Hints("a").Widget != "textarea" {
		t.Fatalf("unexpected ui schema: %#v", ui)
	}
}

func TestParseDocument_KeepsKeyOrder(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "contact.schema.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"zeta", "alpha", "message", "mid"}
	if diff := cmp.Diff(want, doc.Properties.Keys()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDocument_TabIndentedJSON(t *testing.T) {
	raw := "{\n\t\"type\": \"object\",\n\t\"properties\": {\n\t\t\"b\": {\"type\": \"string\"},\n\t\t\"a\": {\"type\": \"number\"}\n\t}\n}"
	doc, err := ParseDocument([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, doc.Properties.Keys()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDocument_DuplicateKeysKeepFirstPosition(t *testing.T) {
	raw := `{"properties":{"a":{"type":"string","title":"one"},"b":{"type":"string"},"a":{"type":"number","title":"two"}}}`
	doc, err := ParseDocument([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, doc.Properties.Keys()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	prop, _ := doc.Properties.Get("a")
	if prop.Title != "two" {
		t.Fatalf("last value should win, got %q", prop.Title)
	}
}

func TestImport_ContactFixture(t *testing.T) {
	doc, err := ParseDocument(testsupport.MustReadFile(t, filepath.Join("testdata", "contact.schema.json")))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := Import(doc, nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := testsupport.MustLoadFieldList(t, filepath.Join("testdata", "contact.fields.golden.json"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("imported fields mismatch (-want +got):\n%s", diff)
	}
}
