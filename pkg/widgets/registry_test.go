package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	d := field.Descriptor{
		Kind:    field.KindText,
		UIHints: &field.UIHints{Widget: " textarea "},
	}

	if got, ok := reg.Resolve(d); !ok || got != WidgetTextarea {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
	if got, _ := reg.Match(d); got != WidgetText {
		t.Fatalf("match should ignore hints, got %q", got)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		kind   field.Kind
		expect string
	}{
		{field.KindText, WidgetText},
		{field.KindNumber, WidgetNumber},
		{field.KindTextarea, WidgetTextarea},
		{field.KindSelect, WidgetSelect},
		{field.KindRadio, WidgetRadio},
		{field.KindCheckbox, WidgetCheckboxes},
		{field.KindDate, WidgetDate},
		{field.KindTime, WidgetTime},
		{field.KindFile, WidgetFile},
		{field.Kind("unknown"), WidgetText},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			got, ok := reg.Resolve(field.Descriptor{Kind: tc.kind})
			if !ok || got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q (ok=%v)", tc.kind, tc.expect, got, ok)
			}
		})
	}
}

func TestRegister_PriorityAndOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register("rating", 100, func(d field.Descriptor) bool {
		return d.Kind == field.KindNumber && d.Validation.Max != nil && *d.Validation.Max <= 5
	})
	reg.Register("stars", 100, func(d field.Descriptor) bool {
		return d.Kind == field.KindNumber
	})

	got, _ := reg.Resolve(field.Descriptor{Kind: field.KindNumber, Validation: field.Validation{Max: field.Float(5)}})
	if got != "rating" {
		t.Fatalf("expected rating, got %q", got)
	}
	got, _ = reg.Resolve(field.Descriptor{Kind: field.KindNumber})
	if got != "stars" {
		t.Fatalf("expected custom matcher to outrank builtins, got %q", got)
	}
}

func TestRegister_IgnoresInvalid(t *testing.T) {
	reg := &Registry{}
	reg.Register("  ", 10, func(field.Descriptor) bool { return true })
	reg.Register("nil", 10, nil)
	if _, ok := reg.Resolve(field.Descriptor{Kind: field.KindText}); ok {
		t.Fatalf("empty registry should not resolve")
	}

	var nilReg *Registry
	if _, ok := nilReg.Match(field.Descriptor{}); ok {
		t.Fatalf("nil registry should not resolve")
	}
}

func TestNames(t *testing.T) {
	want := []string{
		WidgetTextarea, WidgetRadio, WidgetCheckboxes, WidgetSelect,
		WidgetNumber, WidgetDate, WidgetTime, WidgetFile, WidgetText,
	}
	if diff := cmp.Diff(want, NewRegistry().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
