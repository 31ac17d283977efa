package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
	"github.com/goliatone/go-formbuilder/pkg/jsonschema"
	"github.com/goliatone/go-formbuilder/pkg/playground"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// errBadRequest marks malformed request bodies and parameters.
var errBadRequest = errors.New("bad request")

type badRequest struct {
	msg string
}

func (e badRequest) Error() string { return e.msg }
func (e badRequest) Unwrap() error { return errBadRequest }

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	var (
		dup         *playground.DuplicateNameError
		parse       *jsonschema.ParseError
		unsupported *jsonschema.UnsupportedTypeError
	)
	switch {
	case errors.Is(err, fieldlist.ErrIndexOutOfRange), errors.Is(err, render.ErrUnknownRenderer):
		return http.StatusNotFound
	case errors.As(err, &dup):
		return http.StatusConflict
	case errors.Is(err, playground.ErrInvalidKind), errors.As(err, &unsupported):
		return http.StatusUnprocessableEntity
	case errors.As(err, &parse), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(dst); err != nil {
		return badRequest{msg: "decode body: " + err.Error()}
	}
	return nil
}

const maxBody = 4 << 20

// document accepts either an inline JSON object or a string holding the JSON
// text, the way a paste box submits it.
func document(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if raw[0] != '"' {
		return raw, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, badRequest{msg: "decode document text: " + err.Error()}
	}
	return []byte(text), nil
}
