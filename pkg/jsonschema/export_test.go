package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(payload)
}

func TestExport_RequiredTextField(t *testing.T) {
	list := fieldlist.List{{
		Kind:       field.KindText,
		Name:       "a",
		Label:      "A",
		Validation: field.Validation{Required: true},
	}}
	doc, ui := Export(list)

	want := `{"type":"object","properties":{"a":{"type":"string","title":"A"}},"required":["a"]}`
	if got := mustJSON(t, doc); got != want {
		t.Fatalf("schema mismatch:\nwant %s\ngot  %s", want, got)
	}
	if len(ui) != 0 {
		t.Fatalf("expected empty ui schema, got %v", ui)
	}
}

func TestExport_RequiredAbsentWhenNoneRequired(t *testing.T) {
	doc, _ := Export(fieldlist.List{{Kind: field.KindNumber, Name: "n", Label: "N"}})
	if doc.Required != nil {
		t.Fatalf("required should be absent, got %#v", doc.Required)
	}
	if got := mustJSON(t, doc); got != `{"type":"object","properties":{"n":{"type":"number","title":"N"}}}` {
		t.Fatalf("unexpected schema: %s", got)
	}
}

func TestExport_EmptyList(t *testing.T) {
	doc, ui := Export(nil)
	if got := mustJSON(t, doc); got != `{"type":"object","properties":{}}` {
		t.Fatalf("unexpected schema: %s", got)
	}
	if got := mustJSON(t, ui); got != `{}` {
		t.Fatalf("unexpected ui schema: %s", got)
	}
}

func TestExport_TypesAndEnums(t *testing.T) {
	opts := []field.Option{{Label: "One", Value: "1"}, {Label: "Two", Value: "2"}}
	list := fieldlist.List{
		{Kind: field.KindText, Name: "text"},
		{Kind: field.KindNumber, Name: "number"},
		{Kind: field.KindCheckbox, Name: "checkbox", Options: opts},
		{Kind: field.KindRadio, Name: "radio", Options: opts},
		{Kind: field.KindSelect, Name: "select", Options: opts},
		{Kind: field.KindTextarea, Name: "textarea", Options: opts},
		{Kind: field.KindDate, Name: "date"},
		{Kind: field.KindTime, Name: "time"},
		{Kind: field.KindFile, Name: "file"},
	}
	doc, _ := Export(list)

	if diff := cmp.Diff(list.Names(), doc.Properties.Keys()); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}
	for _, d := range list {
		prop, _ := doc.Properties.Get(d.Name)
		wantType := "string"
		if d.Kind == field.KindNumber {
			wantType = "number"
		}
		if prop.Type != wantType {
			t.Fatalf("%s: type %q, want %q", d.Name, prop.Type, wantType)
		}
		if d.Kind.HasOptions() {
			if diff := cmp.Diff([]string{"1", "2"}, prop.Enum); diff != "" {
				t.Fatalf("%s: enum mismatch (-want +got):\n%s", d.Name, diff)
			}
		} else if prop.Enum != nil {
			t.Fatalf("%s: unexpected enum %v", d.Name, prop.Enum)
		}
	}
}

func TestExport_ValidationAndDescription(t *testing.T) {
	list := fieldlist.List{{
		Kind:        field.KindNumber,
		Name:        "age",
		Label:       "Age",
		Placeholder: "Your age",
		Validation: field.Validation{
			Min:       field.Float(0),
			Max:       field.Float(130),
			MinLength: field.Int(1),
			MaxLength: field.Int(3),
			Pattern:   "^[0-9]+$",
		},
	}}
	doc, _ := Export(list)
	want := `{"type":"object","properties":{"age":{"type":"number","title":"Age","description":"Your age","minLength":1,"maxLength":3,"minimum":0,"maximum":130,"pattern":"^[0-9]+$"}}}`
	if got := mustJSON(t, doc); got != want {
		t.Fatalf("schema mismatch:\nwant %s\ngot  %s", want, got)
	}
}

func TestExport_UISchemaOnlyForHintedFields(t *testing.T) {
	hints := &field.UIHints{Widget: "textarea", Autofocus: true}
	list := fieldlist.List{
		{Kind: field.KindText, Name: "plain"},
		{Kind: field.KindTextarea, Name: "bio", UIHints: hints},
	}
	_, ui := Export(list)
	if len(ui) != 1 {
		t.Fatalf("expected one ui entry, got %v", ui)
	}
	if diff := cmp.Diff(hints, ui["bio"]); diff != "" {
		t.Fatalf("hints mismatch (-want +got):\n%s", diff)
	}
	ui["bio"].Widget = "changed"
	if hints.Widget != "textarea" {
		t.Fatalf("export shared hint storage with the field list")
	}
}

func TestExport_RequiredListedOnce(t *testing.T) {
	list := fieldlist.List{
		{Kind: field.KindText, Name: "a", Label: "first", Validation: field.Validation{Required: true}},
		{Kind: field.KindText, Name: "b"},
		{Kind: field.KindText, Name: "a", Label: "second", Validation: field.Validation{Required: true}},
	}
	doc, _ := Export(list)
	if diff := cmp.Diff([]string{"a"}, doc.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, doc.Properties.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	prop, _ := doc.Properties.Get("a")
	if prop.Title != "second" {
		t.Fatalf("last writer should win, got %q", prop.Title)
	}
}

func TestExport_Idempotent(t *testing.T) {
	list := fieldlist.List{
		{Kind: field.KindSelect, Name: "s", Options: []field.Option{{Label: "x", Value: "x"}}, UIHints: &field.UIHints{Widget: "select"}},
	}
	doc1, ui1 := Export(list)
	doc2, ui2 := Export(list)
	if mustJSON(t, doc1) != mustJSON(t, doc2) || mustJSON(t, ui1) != mustJSON(t, ui2) {
		t.Fatalf("export is not idempotent")
	}
}
