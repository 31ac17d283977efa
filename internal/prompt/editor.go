package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/internal/loader"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
	"github.com/goliatone/go-formbuilder/pkg/palette"
	"github.com/goliatone/go-formbuilder/pkg/playground"
)

// Menu entries, in display order.
const (
	ActionAdd = iota
	ActionEdit
	ActionDelete
	ActionMove
	ActionUndo
	ActionRedo
	ActionShowFields
	ActionShowSchema
	ActionImport
	ActionExport
	ActionQuit
)

var menu = []string{
	ActionAdd:        "Add field",
	ActionEdit:       "Edit field",
	ActionDelete:     "Delete field",
	ActionMove:       "Move field",
	ActionUndo:       "Undo",
	ActionRedo:       "Redo",
	ActionShowFields: "Show fields",
	ActionShowSchema: "Show schema",
	ActionImport:     "Import schema",
	ActionExport:     "Export files",
	ActionQuit:       "Quit",
}

// Hint toggles offered by the multi-select, in display order.
var hintToggles = []string{"Hide label", "Autofocus", "Disabled", "Read only"}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithLoader sets the loader used by the import action.
func WithLoader(l *loader.Loader) EditorOption {
	return func(e *Editor) {
		if l != nil {
			e.loader = l
		}
	}
}

// WithLogger routes editor events to logger.
func WithLogger(logger *slog.Logger) EditorOption {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWriteFile replaces the function used by the export action.
func WithWriteFile(fn func(name string, data []byte) error) EditorOption {
	return func(e *Editor) {
		if fn != nil {
			e.writeFile = fn
		}
	}
}

// Editor is the interactive menu loop over a playground session.
type Editor struct {
	session   *playground.Session
	driver    Driver
	loader    *loader.Loader
	logger    *slog.Logger
	writeFile func(name string, data []byte) error
}

// NewEditor binds a session to a prompt driver.
func NewEditor(session *playground.Session, driver Driver, options ...EditorOption) *Editor {
	e := &Editor{
		session: session,
		driver:  driver,
		loader:  loader.New(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		writeFile: func(name string, data []byte) error {
			return os.WriteFile(name, data, 0o644)
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Run shows the menu until the user quits or aborts. Failed actions are
// reported and the loop continues; driver failures end it.
func (e *Editor) Run(ctx context.Context) error {
	for {
		choice, err := e.driver.Select(ctx, SelectConfig{
			Message:  fmt.Sprintf("Form builder (%d fields)", e.session.Len()),
			Options:  menu,
			PageSize: len(menu),
		})
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == ActionQuit {
			return nil
		}

		if err := e.dispatch(ctx, choice); err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			if isDriverErr(err) {
				return err
			}
			e.logger.Debug("action failed", "action", menu[choice], "error", err)
			if infoErr := e.driver.Info(ctx, "Error: "+err.Error()); infoErr != nil {
				return infoErr
			}
		}
	}
}

// driverError marks failures of the prompt driver itself.
type driverError struct{ err error }

func (d driverError) Error() string { return d.err.Error() }
func (d driverError) Unwrap() error { return d.err }

func isDriverErr(err error) bool {
	var de driverError
	return errors.As(err, &de)
}

func (e *Editor) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case ActionAdd:
		return e.add(ctx)
	case ActionEdit:
		return e.edit(ctx)
	case ActionDelete:
		return e.remove(ctx)
	case ActionMove:
		return e.move(ctx)
	case ActionUndo:
		if !e.session.Undo() {
			return e.info(ctx, "Nothing to undo")
		}
		return e.info(ctx, "Undone")
	case ActionRedo:
		if !e.session.Redo() {
			return e.info(ctx, "Nothing to redo")
		}
		return e.info(ctx, "Redone")
	case ActionShowFields:
		return e.info(ctx, describeList(e.session.Fields()))
	case ActionShowSchema:
		return e.showSchema(ctx)
	case ActionImport:
		return e.importSchema(ctx)
	case ActionExport:
		return e.export(ctx)
	default:
		return fmt.Errorf("unknown action %d", choice)
	}
}

func (e *Editor) add(ctx context.Context) error {
	starters := palette.Defaults()
	labels := make([]string, len(starters))
	for i, d := range starters {
		labels[i] = d.Label
	}
	idx, err := e.selectOne(ctx, SelectConfig{Message: "Field type", Options: labels, PageSize: len(labels)})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(starters) {
		return fmt.Errorf("invalid field type selection %d", idx)
	}

	d := starters[idx]
	d.Name = palette.UniqueName(d.Name, e.session.Fields().Names())
	d, err = e.editDescriptor(ctx, d)
	if err != nil {
		return err
	}
	if err := e.session.AddField(d); err != nil {
		return err
	}
	return e.info(ctx, fmt.Sprintf("Added %s", d.Name))
}

func (e *Editor) edit(ctx context.Context) error {
	index, ok, err := e.pickField(ctx, "Field to edit")
	if err != nil || !ok {
		return err
	}
	current := e.session.Fields()[index]

	kinds := paletteKinds()
	kindIdx, err := e.selectOne(ctx, SelectConfig{
		Message:      "Field type",
		Options:      kindLabels(kinds),
		DefaultIndex: indexOfKind(kinds, current.Kind),
		PageSize:     len(kinds),
	})
	if err != nil {
		return err
	}
	if kindIdx >= 0 && kindIdx < len(kinds) {
		current.Kind = kinds[kindIdx]
	}

	next, err := e.editDescriptor(ctx, current)
	if err != nil {
		return err
	}
	if err := e.session.UpdateField(index, next); err != nil {
		return err
	}
	return e.info(ctx, fmt.Sprintf("Updated %s", next.Name))
}

func (e *Editor) remove(ctx context.Context) error {
	index, ok, err := e.pickField(ctx, "Field to delete")
	if err != nil || !ok {
		return err
	}
	name := e.session.Fields()[index].Name
	confirmed, err := e.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Delete %s?", name)})
	if err != nil {
		return driverError{err}
	}
	if !confirmed {
		return nil
	}
	if err := e.session.DeleteField(index); err != nil {
		return err
	}
	return e.info(ctx, fmt.Sprintf("Deleted %s", name))
}

func (e *Editor) move(ctx context.Context) error {
	index, ok, err := e.pickField(ctx, "Field to move")
	if err != nil || !ok {
		return err
	}
	count := e.session.Len()
	raw, err := e.input(ctx, InputConfig{
		Message: fmt.Sprintf("New position (1-%d, blank to cancel)", count),
		Validator: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || n < 1 || n > count {
				return fmt.Errorf("enter a number between 1 and %d", count)
			}
			return nil
		},
	})
	if err != nil {
		return err
	}

	result := fieldlist.Cancelled(index)
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		position, err := strconv.Atoi(trimmed)
		if err != nil {
			return fmt.Errorf("invalid position %q", raw)
		}
		result = fieldlist.DropAt(index, position-1)
	}
	moved, err := e.session.Reorder(result)
	if err != nil {
		return err
	}
	if !moved {
		return e.info(ctx, "Move cancelled")
	}
	return e.info(ctx, "Moved")
}

func (e *Editor) showSchema(ctx context.Context) error {
	schemaText, uiText, err := e.session.ExportJSON()
	if err != nil {
		return err
	}
	return e.info(ctx, fmt.Sprintf("JSON Schema:\n%s\n\nUI Schema:\n%s", schemaText, uiText))
}

func (e *Editor) importSchema(ctx context.Context) error {
	schemaLoc, err := e.input(ctx, InputConfig{Message: "Schema file or URL", Validator: required})
	if err != nil {
		return err
	}
	uiLoc, err := e.input(ctx, InputConfig{Message: "UI schema file or URL (optional)"})
	if err != nil {
		return err
	}

	rawSchema, rawUI, err := e.loader.LoadPair(ctx, loader.ParseSource(schemaLoc), loader.ParseSource(uiLoc))
	if err != nil {
		return err
	}
	if err := e.session.ImportSchema(rawSchema, rawUI); err != nil {
		return err
	}
	return e.info(ctx, fmt.Sprintf("Imported %d fields", e.session.Len()))
}

func (e *Editor) export(ctx context.Context) error {
	prefix, err := e.input(ctx, InputConfig{Message: "Output prefix", Default: "form", Validator: required})
	if err != nil {
		return err
	}
	prefix = strings.TrimSpace(prefix)
	schemaText, uiText, err := e.session.ExportJSON()
	if err != nil {
		return err
	}
	schemaPath := prefix + ".schema.json"
	uiPath := prefix + ".uischema.json"
	if err := e.writeFile(schemaPath, append(schemaText, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", schemaPath, err)
	}
	if err := e.writeFile(uiPath, append(uiText, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", uiPath, err)
	}
	return e.info(ctx, fmt.Sprintf("Wrote %s and %s", schemaPath, uiPath))
}

// editDescriptor walks the user through every editable attribute of d,
// offering the current values as defaults.
func (e *Editor) editDescriptor(ctx context.Context, d field.Descriptor) (field.Descriptor, error) {
	var err error
	if d.Label, err = e.input(ctx, InputConfig{Message: "Label", Default: d.Label}); err != nil {
		return d, err
	}
	if d.Name, err = e.input(ctx, InputConfig{Message: "Name", Default: d.Name, Validator: required}); err != nil {
		return d, err
	}
	d.Name = strings.TrimSpace(d.Name)
	if d.Placeholder, err = e.input(ctx, InputConfig{Message: "Placeholder", Default: d.Placeholder}); err != nil {
		return d, err
	}

	requiredField, err := e.driver.Confirm(ctx, ConfirmConfig{Message: "Required?", Default: d.Validation.Required})
	if err != nil {
		return d, driverError{err}
	}
	d.Validation.Required = requiredField

	switch d.Kind {
	case field.KindNumber:
		if d.Validation.Min, err = e.floatInput(ctx, "Minimum (blank for none)", d.Validation.Min); err != nil {
			return d, err
		}
		if d.Validation.Max, err = e.floatInput(ctx, "Maximum (blank for none)", d.Validation.Max); err != nil {
			return d, err
		}
		d.Validation.MinLength, d.Validation.MaxLength, d.Validation.Pattern = nil, nil, ""
	case field.KindText, field.KindTextarea:
		if d.Validation.MinLength, err = e.intInput(ctx, "Minimum length (blank for none)", d.Validation.MinLength); err != nil {
			return d, err
		}
		if d.Validation.MaxLength, err = e.intInput(ctx, "Maximum length (blank for none)", d.Validation.MaxLength); err != nil {
			return d, err
		}
		if d.Validation.Pattern, err = e.input(ctx, InputConfig{Message: "Pattern (blank for none)", Default: d.Validation.Pattern}); err != nil {
			return d, err
		}
		d.Validation.Min, d.Validation.Max = nil, nil
	default:
		d.Validation = field.Validation{Required: d.Validation.Required}
	}

	if d.Kind.HasOptions() {
		raw, err := e.input(ctx, InputConfig{
			Message: "Options (label=value, comma separated)",
			Default: formatOptions(d.Options),
		})
		if err != nil {
			return d, err
		}
		d.Options = parseOptions(raw)
	} else {
		d.Options = nil
	}

	hints, err := e.editHints(ctx, d)
	if err != nil {
		return d, err
	}
	d.UIHints = hints
	return d, nil
}

func (e *Editor) editHints(ctx context.Context, d field.Descriptor) (*field.UIHints, error) {
	hints := d.UIHints.Clone()
	if hints == nil {
		hints = &field.UIHints{}
	}

	var defaults []int
	for i, on := range []bool{hints.HideLabel, hints.Autofocus, hints.Disabled, hints.Readonly} {
		if on {
			defaults = append(defaults, i)
		}
	}
	picked, err := e.driver.MultiSelect(ctx, SelectConfig{Message: "UI hints", Options: hintToggles, Defaults: defaults})
	if err != nil {
		return nil, driverError{err}
	}
	flags := make([]bool, len(hintToggles))
	for _, i := range picked {
		if i >= 0 && i < len(flags) {
			flags[i] = true
		}
	}
	hints.HideLabel, hints.Autofocus, hints.Disabled, hints.Readonly = flags[0], flags[1], flags[2], flags[3]

	if hints.Description, err = e.input(ctx, InputConfig{Message: "Help text", Default: hints.Description}); err != nil {
		return nil, err
	}

	// Textarea and radio read back as text and select unless the widget
	// is recorded.
	switch d.Kind {
	case field.KindTextarea, field.KindRadio:
		hints.Widget = string(d.Kind)
	default:
		if hints.Widget == string(field.KindTextarea) || hints.Widget == string(field.KindRadio) {
			hints.Widget = ""
		}
	}

	if reflect.ValueOf(*hints).IsZero() {
		return nil, nil
	}
	return hints, nil
}

func (e *Editor) pickField(ctx context.Context, message string) (int, bool, error) {
	list := e.session.Fields()
	if len(list) == 0 {
		return 0, false, e.info(ctx, "No fields yet")
	}
	options := make([]string, len(list))
	for i, d := range list {
		options[i] = fmt.Sprintf("%s (%s)", d.Name, d.Kind)
	}
	idx, err := e.selectOne(ctx, SelectConfig{Message: message, Options: options})
	if err != nil {
		return 0, false, err
	}
	if idx < 0 || idx >= len(list) {
		return 0, false, fmt.Errorf("invalid field selection %d", idx)
	}
	return idx, true, nil
}

func (e *Editor) input(ctx context.Context, cfg InputConfig) (string, error) {
	out, err := e.driver.Input(ctx, cfg)
	if err != nil {
		return "", driverError{err}
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(out); err != nil {
			return "", err
		}
	}
	return out, nil
}

func (e *Editor) selectOne(ctx context.Context, cfg SelectConfig) (int, error) {
	idx, err := e.driver.Select(ctx, cfg)
	if err != nil {
		return 0, driverError{err}
	}
	return idx, nil
}

func (e *Editor) info(ctx context.Context, msg string) error {
	if err := e.driver.Info(ctx, msg); err != nil {
		return driverError{err}
	}
	return nil
}

func (e *Editor) floatInput(ctx context.Context, message string, current *float64) (*float64, error) {
	def := ""
	if current != nil {
		def = strconv.FormatFloat(*current, 'f', -1, 64)
	}
	raw, err := e.input(ctx, InputConfig{Message: message, Default: def, Validator: optionalFloat})
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, _ := strconv.ParseFloat(raw, 64)
	return field.Float(v), nil
}

func (e *Editor) intInput(ctx context.Context, message string, current *int) (*int, error) {
	def := ""
	if current != nil {
		def = strconv.Itoa(*current)
	}
	raw, err := e.input(ctx, InputConfig{Message: message, Default: def, Validator: optionalInt})
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, _ := strconv.Atoi(raw)
	return field.Int(v), nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func optionalFloat(s string) error {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}

func optionalInt(s string) error {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return fmt.Errorf("%q is not a non-negative integer", s)
	}
	return nil
}

// parseOptions reads "Red=red, Blue" into options; a bare label is its own
// value.
func parseOptions(raw string) []field.Option {
	var out []field.Option
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		label, value, found := strings.Cut(part, "=")
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)
		if !found {
			value = label
		}
		out = append(out, field.Option{Label: label, Value: value})
	}
	return out
}

func formatOptions(options []field.Option) string {
	parts := make([]string, len(options))
	for i, opt := range options {
		if opt.Label == opt.Value {
			parts[i] = opt.Label
			continue
		}
		parts[i] = opt.Label + "=" + opt.Value
	}
	return strings.Join(parts, ", ")
}

func describeList(list fieldlist.List) string {
	if len(list) == 0 {
		return "No fields yet"
	}
	var b strings.Builder
	for i, d := range list {
		if i > 0 {
			b.WriteByte('\n')
		}
		marker := ""
		if d.Validation.Required {
			marker = " *"
		}
		fmt.Fprintf(&b, "%d. %s (%s) %q%s", i+1, d.Name, d.Kind, d.Label, marker)
	}
	return b.String()
}

func paletteKinds() []field.Kind {
	starters := palette.Defaults()
	out := make([]field.Kind, len(starters))
	for i, d := range starters {
		out[i] = d.Kind
	}
	return out
}

func kindLabels(kinds []field.Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}

func indexOfKind(kinds []field.Kind, kind field.Kind) int {
	for i, k := range kinds {
		if k == kind {
			return i
		}
	}
	return 0
}
