package prompt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/playground"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	selectErr    error
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		if s.selectErr != nil {
			return -1, s.selectErr
		}
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) sawInfo(fragment string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func TestEditor_AddTextFieldAndShowSchema(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{ActionAdd, 0, ActionShowSchema, ActionQuit},
		inputs:    []string{"Email", "email", "you@example.com", "3", "", "", ""},
		confirm:   []bool{true},
		multiIdx:  [][]int{{}},
	}
	session := playground.NewSession()
	if err := NewEditor(session, driver).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := field.Descriptor{
		Kind:        field.KindText,
		Label:       "Email",
		Name:        "email",
		Placeholder: "you@example.com",
		Validation:  field.Validation{Required: true, MinLength: field.Int(3)},
	}
	if diff := cmp.Diff(want, session.Fields()[0]); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}
	if !driver.sawInfo("Added email") || !driver.sawInfo(`"minLength": 3`) {
		t.Fatalf("unexpected info messages: %q", driver.infoMessages)
	}
}

func TestEditor_ChoiceFieldsMoveUndoRedo(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{
			ActionAdd, 3,
			ActionAdd, 0,
			ActionMove, 1,
			ActionUndo,
			ActionRedo,
			ActionRedo,
			ActionQuit,
		},
		inputs: []string{
			"Agree", "agree", "", "Yes=yes, No", "Pick one",
			"Name", "name", "", "", "", "", "",
			"1",
		},
		confirm:  []bool{false, false},
		multiIdx: [][]int{{0}, {}},
	}
	session := playground.NewSession()
	if err := NewEditor(session, driver).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if diff := cmp.Diff([]string{"name", "agree"}, session.Fields().Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	agree := session.Fields()[1]
	wantHints := &field.UIHints{Widget: "radio", HideLabel: true, Description: "Pick one"}
	if diff := cmp.Diff(wantHints, agree.UIHints); diff != "" {
		t.Fatalf("hints mismatch (-want +got):\n%s", diff)
	}
	wantOptions := []field.Option{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "No"}}
	if diff := cmp.Diff(wantOptions, agree.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if !driver.sawInfo("Undone") || !driver.sawInfo("Nothing to redo") {
		t.Fatalf("unexpected info messages: %q", driver.infoMessages)
	}
}

func TestEditor_ReportsFailuresAndContinues(t *testing.T) {
	session := playground.NewSession()
	if err := session.AddField(field.Descriptor{Kind: field.KindText, Name: "textInput", Label: "T"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	driver := &stubDriver{
		selectIdx: []int{ActionAdd, 0, ActionQuit},
		inputs:    []string{"Other", "textInput", "", "", "", "", ""},
		confirm:   []bool{false},
		multiIdx:  [][]int{{}},
	}
	if err := NewEditor(session, driver).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if session.Len() != 1 {
		t.Fatalf("duplicate should have been rejected, have %d fields", session.Len())
	}
	if !driver.sawInfo("Error:") || !driver.sawInfo("textInput") {
		t.Fatalf("expected duplicate error report, got %q", driver.infoMessages)
	}
}

func TestEditor_EmptyListActions(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{ActionEdit, ActionDelete, ActionUndo, ActionShowFields},
		selectErr: ErrAborted,
	}
	if err := NewEditor(playground.NewSession(), driver).Run(context.Background()); err != nil {
		t.Fatalf("abort should end the loop cleanly, got %v", err)
	}
	want := []string{"No fields yet", "No fields yet", "Nothing to undo", "No fields yet"}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_DriverFailureEndsLoop(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{ActionAdd}}
	err := NewEditor(playground.NewSession(), driver).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no select scripted") {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestEditor_ImportAndExport(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "in.schema.json")
	schema := `{"type":"object","properties":{"b":{"type":"number","title":"B"},"a":{"type":"string","title":"A"}},"required":["a"]}`
	if err := os.WriteFile(schemaPath, []byte(schema), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	prefix := filepath.Join(dir, "out")

	driver := &stubDriver{
		selectIdx: []int{ActionImport, ActionExport, ActionQuit},
		inputs:    []string{schemaPath, "", prefix},
	}
	session := playground.NewSession()
	if err := NewEditor(session, driver).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if diff := cmp.Diff([]string{"b", "a"}, session.Fields().Names()); diff != "" {
		t.Fatalf("import order mismatch (-want +got):\n%s", diff)
	}
	schemaText, uiText, err := session.ExportJSON()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	gotSchema, err := os.ReadFile(prefix + ".schema.json")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	gotUI, err := os.ReadFile(prefix + ".uischema.json")
	if err != nil {
		t.Fatalf("read ui schema: %v", err)
	}
	if string(gotSchema) != string(schemaText)+"\n" || string(gotUI) != string(uiText)+"\n" {
		t.Fatalf("written files do not match export:\n%s\n%s", gotSchema, gotUI)
	}
	if !driver.sawInfo("Imported 2 fields") {
		t.Fatalf("unexpected info messages: %q", driver.infoMessages)
	}
}

func TestParseOptions(t *testing.T) {
	got := parseOptions(" Red=red, ,Blue ,Green = g ")
	want := []field.Option{
		{Label: "Red", Value: "red"},
		{Label: "Blue", Value: "Blue"},
		{Label: "Green", Value: "g"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if formatOptions(want) != "Red=red, Blue, Green=g" {
		t.Fatalf("unexpected format %q", formatOptions(want))
	}
}
