package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formbuilder/internal/loader"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
	"github.com/goliatone/go-formbuilder/pkg/palette"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

type stateResponse struct {
	Fields  fieldlist.List `json:"fields"`
	CanUndo bool           `json:"canUndo"`
	CanRedo bool           `json:"canRedo"`
}

type changeResponse struct {
	Changed bool `json:"changed"`
	stateResponse
}

type historyResponse struct {
	Undo    int  `json:"undo"`
	Redo    int  `json:"redo"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

type schemaResponse struct {
	Schema   json.RawMessage `json:"schema"`
	UISchema json.RawMessage `json:"uiSchema"`
}

type importRequest struct {
	Schema       json.RawMessage `json:"schema,omitempty"`
	UISchema     json.RawMessage `json:"uiSchema,omitempty"`
	SchemaSource string          `json:"schemaSource,omitempty"`
	UISource     string          `json:"uiSource,omitempty"`
}

type previewRequest struct {
	Values   map[string]any      `json:"values,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
	Validate bool                `json:"validate,omitempty"`
}

// state must be called with s.mu held.
func (s *Server) state() stateResponse {
	fields := s.session.Fields()
	if fields == nil {
		fields = fieldlist.List{}
	}
	return stateResponse{
		Fields:  fields,
		CanUndo: s.session.CanUndo(),
		CanRedo: s.session.CanRedo(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, palette.Defaults())
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleAddField(w http.ResponseWriter, r *http.Request) {
	var d field.Descriptor
	if err := decodeBody(w, r, &d); err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.AddField(d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.state())
}

func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var d field.Descriptor
	if err := decodeBody(w, r, &d); err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.UpdateField(index, d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleDeleteField(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.DeleteField(index); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var drag fieldlist.DragResult
	if err := decodeBody(w, r, &drag); err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	moved, err := s.session.Reorder(drag)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, changeResponse{Changed: moved, stateResponse: s.state()})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.session.Undo()
	writeJSON(w, http.StatusOK, changeResponse{Changed: changed, stateResponse: s.state()})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.session.Redo()
	writeJSON(w, http.StatusOK, changeResponse{Changed: changed, stateResponse: s.state()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Reset()
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	undo, redo := s.session.Depth()
	writeJSON(w, http.StatusOK, historyResponse{
		Undo:    undo,
		Redo:    redo,
		CanUndo: s.session.CanUndo(),
		CanRedo: s.session.CanRedo(),
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	schemaText, uiText, err := s.session.ExportJSON()
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	switch r.URL.Query().Get("part") {
	case "schema":
		writeRaw(w, schemaText)
	case "ui", "uiSchema":
		writeRaw(w, uiText)
	default:
		writeJSON(w, http.StatusOK, schemaResponse{Schema: schemaText, UISchema: uiText})
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	rawSchema, rawUI, err := s.importPayload(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.ImportSchema(rawSchema, rawUI); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleImportCheck(w http.ResponseWriter, r *http.Request) {
	rawSchema, rawUI, err := s.importPayload(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validation.ValidateDocument(rawSchema, rawUI))
}

func (s *Server) importPayload(w http.ResponseWriter, r *http.Request) ([]byte, []byte, error) {
	var req importRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nil, nil, err
	}
	if src := strings.TrimSpace(req.SchemaSource); src != "" {
		if s.loader == nil {
			return nil, nil, badRequest{msg: "importing from a source is disabled"}
		}
		schemaSrc, err := loader.ParseRootedSource(src)
		if err != nil {
			return nil, nil, badRequest{msg: err.Error()}
		}
		uiSrc, err := loader.ParseRootedSource(req.UISource)
		if err != nil {
			return nil, nil, badRequest{msg: err.Error()}
		}
		rawSchema, rawUI, err := s.loader.LoadPair(r.Context(), schemaSrc, uiSrc)
		if err != nil {
			return nil, nil, badRequest{msg: err.Error()}
		}
		return rawSchema, rawUI, nil
	}
	rawSchema, err := document(req.Schema)
	if err != nil {
		return nil, nil, err
	}
	if rawSchema == nil {
		return nil, nil, badRequest{msg: "schema is required"}
	}
	rawUI, err := document(req.UISchema)
	if err != nil {
		return nil, nil, err
	}
	if rawUI == nil {
		rawUI = []byte("{}")
	}
	return rawSchema, rawUI, nil
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	renderer, err := s.renderers.Get(r.URL.Query().Get("renderer"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req previewRequest
	if r.Method == http.MethodPost {
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
	}

	s.mu.Lock()
	fields := s.session.Fields()
	doc, _ := s.session.ExportSchema()
	s.mu.Unlock()

	opts := render.RenderOptions{Values: req.Values, Errors: render.MergeErrors(req.Errors)}
	if req.Validate {
		opts.Errors = render.MergeErrors(opts.Errors, validation.ValidateSubmission(doc, req.Values).FieldErrors())
	}
	out, err := renderer.Render(r.Context(), fields, opts)
	if err != nil {
		s.logger.Error("render preview", "renderer", renderer.Name(), "error", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func (s *Server) handleRenderers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.renderers.Names())
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := decodeBody(w, r, &values); err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	doc, _ := s.session.ExportSchema()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, validation.ValidateSubmission(doc, values))
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = "Form"
	}
	s.mu.Lock()
	doc, _ := s.session.ExportSchema()
	s.mu.Unlock()
	api, err := validation.OpenAPIComponents(r.Context(), doc, name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api)
}

func pathIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest{msg: "index must be an integer: " + raw}
	}
	return index, nil
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
