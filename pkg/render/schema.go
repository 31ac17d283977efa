package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
	"github.com/goliatone/go-formbuilder/pkg/jsonschema"
)

// SchemaRenderer emits the exported JSON Schema document. Render options do
// not apply to it.
type SchemaRenderer struct{}

func (SchemaRenderer) Name() string { return "schema" }

func (SchemaRenderer) ContentType() string { return "application/schema+json" }

func (SchemaRenderer) Render(ctx context.Context, list fieldlist.List, _ RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, _ := jsonschema.Export(list)
	return jsonschema.MarshalIndent(doc)
}
