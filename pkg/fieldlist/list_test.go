package fieldlist

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

func sample(names ...string) List {
	out := make(List, len(names))
	for i, name := range names {
		out[i] = field.Descriptor{Kind: field.KindText, Label: name, Name: name}
	}
	return out
}

func TestAdd_AppendsWithoutMutatingInput(t *testing.T) {
	input := sample("a", "b")
	got := Add(input, field.Descriptor{Kind: field.KindNumber, Name: "c", Label: "C"})

	if diff := cmp.Diff([]string{"a", "b", "c"}, got.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if len(input) != 2 {
		t.Fatalf("input mutated: %v", input.Names())
	}
}

func TestUpdate(t *testing.T) {
	input := sample("a", "b")
	got, err := Update(input, 1, field.Descriptor{Kind: field.KindDate, Name: "z", Label: "Z"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got[1].Name != "z" || got[1].Kind != field.KindDate {
		t.Fatalf("unexpected element: %+v", got[1])
	}
	if input[1].Name != "b" {
		t.Fatalf("input mutated: %+v", input[1])
	}
}

func TestDelete(t *testing.T) {
	got, err := Delete(sample("a", "b", "c"), 1)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, got.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	list := sample("a", "b")
	cases := []struct {
		name string
		run  func() error
	}{
		{"update negative", func() error { _, err := Update(list, -1, field.Descriptor{}); return err }},
		{"update past end", func() error { _, err := Update(list, 2, field.Descriptor{}); return err }},
		{"delete past end", func() error { _, err := Delete(list, 5); return err }},
		{"delete empty", func() error { _, err := Delete(nil, 0); return err }},
		{"move bad source", func() error { _, err := Move(list, 2, 0); return err }},
		{"move bad destination", func() error { _, err := Move(list, 0, -1); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
			}
			var idxErr *IndexError
			if !errors.As(err, &idxErr) {
				t.Fatalf("expected *IndexError, got %T", err)
			}
		})
	}
}

func TestMove(t *testing.T) {
	cases := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 3, []string{"b", "c", "d", "a", "e"}},
		{"backward", 4, 1, []string{"a", "e", "b", "c", "d"}},
		{"adjacent", 1, 2, []string{"a", "c", "b", "d", "e"}},
		{"same slot", 2, 2, []string{"a", "b", "c", "d", "e"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := sample("a", "b", "c", "d", "e")
			got, err := Move(input, tc.from, tc.to)
			if err != nil {
				t.Fatalf("move: %v", err)
			}
			if diff := cmp.Diff(tc.want, got.Names()); diff != "" {
				t.Fatalf("names mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"a", "b", "c", "d", "e"}, input.Names()); diff != "" {
				t.Fatalf("input mutated (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMove_OnlyRangeShifts(t *testing.T) {
	input := sample("a", "b", "c", "d", "e", "f")
	from, to := 1, 4
	got, err := Move(input, from, to)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(got) != len(input) {
		t.Fatalf("length changed: %d", len(got))
	}
	for i := range input {
		if i < from || i > to {
			if got[i].Name != input[i].Name {
				t.Fatalf("element outside range moved at %d: %s", i, got[i].Name)
			}
		}
	}
	if got[to].Name != input[from].Name {
		t.Fatalf("moved element not at destination: %s", got[to].Name)
	}
}

func TestReorder(t *testing.T) {
	input := sample("a", "b", "c")

	got, moved, err := Reorder(input, Cancelled(0))
	if err != nil || moved {
		t.Fatalf("cancelled drop should be a no-op: moved=%v err=%v", moved, err)
	}
	if diff := cmp.Diff(input, got); diff != "" {
		t.Fatalf("cancelled drop changed list:\n%s", diff)
	}

	got, moved, err = Reorder(input, DropAt(2, 0))
	if err != nil || !moved {
		t.Fatalf("expected move: moved=%v err=%v", moved, err)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, got.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestClone_IsDeep(t *testing.T) {
	input := List{{
		Kind:       field.KindSelect,
		Name:       "s",
		Options:    []field.Option{{Label: "A", Value: "a"}},
		Validation: field.Validation{Min: field.Float(1)},
		UIHints:    &field.UIHints{Widget: "select"},
	}}
	clone := input.Clone()
	clone[0].Options[0].Value = "changed"
	*clone[0].Validation.Min = 9
	clone[0].UIHints.Widget = "radio"

	if input[0].Options[0].Value != "a" || *input[0].Validation.Min != 1 || input[0].UIHints.Widget != "select" {
		t.Fatalf("clone shares storage with input: %+v", input[0])
	}
}
