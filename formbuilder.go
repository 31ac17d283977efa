// Package formbuilder is the quick-start entry point: it wires a builder
// session, the schema loader and the HTML preview renderer together.
package formbuilder

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formbuilder/internal/loader"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
	"github.com/goliatone/go-formbuilder/pkg/playground"
	"github.com/goliatone/go-formbuilder/pkg/preview"
)

// Descriptor aliases field.Descriptor so callers can build fields from the
// top-level package.
type Descriptor = field.Descriptor

// FieldList aliases fieldlist.List.
type FieldList = fieldlist.List

// RenderOptions aliases preview.RenderOptions for prefilled values and
// validation messages.
type RenderOptions = preview.RenderOptions

// NewSession starts an empty builder session.
func NewSession(options ...playground.Option) *playground.Session {
	return playground.NewSession(options...)
}

// EmbeddedTemplates exposes the built-in preview templates so callers can
// copy or extend them.
func EmbeddedTemplates() fs.FS {
	return preview.TemplatesFS()
}

// RenderSchema imports a JSON Schema and UI schema into a throwaway session
// and renders the preview HTML for it. A nil rawUI is treated as "{}".
func RenderSchema(ctx context.Context, rawSchema, rawUI []byte, opts RenderOptions, options ...preview.Option) ([]byte, error) {
	if rawUI == nil {
		rawUI = []byte("{}")
	}
	session := playground.NewSession(playground.WithDuplicateNames(true))
	if err := session.ImportSchema(rawSchema, rawUI); err != nil {
		return nil, err
	}
	renderer, err := preview.New(options...)
	if err != nil {
		return nil, fmt.Errorf("formbuilder: preview: %w", err)
	}
	return renderer.Render(ctx, session.Fields(), opts)
}

// RenderSource loads the schema (and optional UI schema) from a file path or
// http(s) URL, accepting JSON or YAML, then renders it like RenderSchema. An
// empty uiLocation means no UI schema.
func RenderSource(ctx context.Context, schemaLocation, uiLocation string, opts RenderOptions, options ...preview.Option) ([]byte, error) {
	schemaSrc := loader.ParseSource(schemaLocation)
	if schemaSrc == nil {
		return nil, fmt.Errorf("formbuilder: schema location is required")
	}
	l := loader.New(loader.WithHTTP(loader.DefaultTimeout))
	rawSchema, rawUI, err := l.LoadPair(ctx, schemaSrc, loader.ParseSource(uiLocation))
	if err != nil {
		return nil, err
	}
	return RenderSchema(ctx, rawSchema, rawUI, opts, options...)
}
