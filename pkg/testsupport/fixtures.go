// Package testsupport holds fixture and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
)

// UpdateEnv names the environment variable that rewrites golden files.
const UpdateEnv = "UPDATE_GOLDENS"

// ContactFields returns a small list covering a text, a required number and
// a select field.
func ContactFields() fieldlist.List {
	return fieldlist.List{
		{Kind: field.KindText, Label: "Name", Name: "name", Placeholder: "Jane Doe"},
		{Kind: field.KindNumber, Label: "Age", Name: "age", Validation: field.Validation{Required: true, Min: field.Float(0)}},
		{Kind: field.KindSelect, Label: "Topic", Name: "topic", Options: []field.Option{
			{Label: "Sales", Value: "sales"},
			{Label: "Support", Value: "support"},
		}},
	}
}

// MustLoadFieldList reads a JSON field list fixture.
func MustLoadFieldList(t *testing.T, path string) fieldlist.List {
	t.Helper()

	list, err := LoadFieldList(path)
	if err != nil {
		t.Fatalf("load field list: %v", err)
	}
	return list
}

// LoadFieldList reads a JSON field list fixture without requiring testing.T.
func LoadFieldList(path string) (fieldlist.List, error) {
	if path == "" {
		return nil, errors.New("testsupport: field list path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read field list: %w", err)
	}
	var out fieldlist.List
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal field list: %w", err)
	}
	return out, nil
}

// MustReadFile returns the raw bytes of a fixture.
func MustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv(UpdateEnv) == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got with the golden file at path, or rewrites the
// golden when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadFile(t, path)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}
