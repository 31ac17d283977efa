package playground

import (
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/jsonschema"
)

// Session owns the current field list through its history. It is not safe
// for concurrent use; surfaces that share a session serialise calls.
type Session struct {
	history    *history.History[fieldlist.List]
	logger     *slog.Logger
	allowDupes bool
}

// NewSession starts a session with an empty field list and empty history.
func NewSession(options ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Session{
		history:    history.New(fieldlist.List{}, history.WithLimit(cfg.historyLimit)),
		logger:     cfg.logger,
		allowDupes: cfg.allowDupes,
	}
}

// Fields returns a copy of the current field list.
func (s *Session) Fields() fieldlist.List {
	return s.history.Current().Clone()
}

// Len returns the number of fields in the current list.
func (s *Session) Len() int {
	return len(s.history.Current())
}

// AddField appends d to the list.
func (s *Session) AddField(d field.Descriptor) error {
	current := s.history.Current()
	if err := s.check(current, d, -1); err != nil {
		return err
	}
	s.commit("add", fieldlist.Add(current, d))
	return nil
}

// UpdateField replaces the field at index.
func (s *Session) UpdateField(index int, d field.Descriptor) error {
	current := s.history.Current()
	next, err := fieldlist.Update(current, index, d)
	if err != nil {
		return err
	}
	if err := s.check(current, d, index); err != nil {
		return err
	}
	s.commit("update", next)
	return nil
}

// DeleteField removes the field at index.
func (s *Session) DeleteField(index int) error {
	next, err := fieldlist.Delete(s.history.Current(), index)
	if err != nil {
		return err
	}
	s.commit("delete", next)
	return nil
}

// Reorder applies a drag result. A cancelled drop changes nothing and
// reports false.
func (s *Session) Reorder(result fieldlist.DragResult) (bool, error) {
	next, moved, err := fieldlist.Reorder(s.history.Current(), result)
	if err != nil {
		return false, err
	}
	if !moved {
		s.logger.Debug("reorder cancelled", "source", result.Source)
		return false, nil
	}
	s.commit("reorder", next)
	return true, nil
}

// Reset commits an empty list.
func (s *Session) Reset() {
	s.commit("reset", fieldlist.List{})
}

// Undo steps back one history entry. It reports false when there is nothing
// to undo.
func (s *Session) Undo() bool {
	ok := s.history.Undo()
	if ok {
		s.logger.Debug("undo", "fields", s.Len())
	}
	return ok
}

// Redo steps forward one history entry. It reports false when there is
// nothing to redo.
func (s *Session) Redo() bool {
	ok := s.history.Redo()
	if ok {
		s.logger.Debug("redo", "fields", s.Len())
	}
	return ok
}

// CanUndo reports whether Undo would change the list.
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the list.
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// Depth returns the undo and redo stack sizes.
func (s *Session) Depth() (undo, redo int) {
	return s.history.Depth()
}

// ExportSchema renders the current list. It never mutates the session.
func (s *Session) ExportSchema() (jsonschema.Document, jsonschema.UISchema) {
	return jsonschema.Export(s.history.Current())
}

// ExportJSON renders the current list as indented schema and UI schema text.
func (s *Session) ExportJSON() (schemaText, uiText []byte, err error) {
	doc, ui := s.ExportSchema()
	schemaText, err = jsonschema.MarshalIndent(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("playground: encode schema: %w", err)
	}
	uiText, err = jsonschema.MarshalIndent(ui)
	if err != nil {
		return nil, nil, fmt.Errorf("playground: encode ui schema: %w", err)
	}
	return schemaText, uiText, nil
}

// ImportSchema parses both payloads and replaces the whole list as one
// history entry. Any parse, mapping, or validation failure leaves the session
// unchanged.
func (s *Session) ImportSchema(rawSchema, rawUI []byte) error {
	doc, err := jsonschema.ParseDocument(rawSchema)
	if err != nil {
		return err
	}
	ui, err := jsonschema.ParseUISchema(rawUI)
	if err != nil {
		return err
	}
	return s.ImportDocument(doc, ui)
}

// ImportDocument is ImportSchema for already decoded documents.
func (s *Session) ImportDocument(doc jsonschema.Document, ui jsonschema.UISchema) error {
	list, err := jsonschema.Import(doc, ui)
	if err != nil {
		return err
	}
	if !s.allowDupes {
		if name, dup := firstDuplicate(list); dup {
			return &DuplicateNameError{Name: name}
		}
	}
	s.commit("import", list)
	return nil
}

func (s *Session) commit(op string, next fieldlist.List) {
	s.history.Set(next)
	undo, _ := s.history.Depth()
	s.logger.Debug("commit", "op", op, "fields", len(next), "undo_depth", undo)
}

// check validates d against the list it is about to join. skip is the index
// being replaced, or -1 for appends.
func (s *Session) check(list fieldlist.List, d field.Descriptor, skip int) error {
	if !d.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, d.Kind)
	}
	if s.allowDupes {
		return nil
	}
	for i, existing := range list {
		if i != skip && existing.Name == d.Name {
			return &DuplicateNameError{Name: d.Name}
		}
	}
	return nil
}

func firstDuplicate(list fieldlist.List) (string, bool) {
	seen := make(map[string]struct{}, len(list))
	for _, d := range list {
		if _, ok := seen[d.Name]; ok {
			return d.Name, true
		}
		seen[d.Name] = struct{}{}
	}
	return "", false
}
