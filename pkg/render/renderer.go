// Package render defines the renderer contract shared by every output format
// of a field list, plus a name-keyed registry of renderers.
package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
)

// Renderer converts a field list into a byte representation (HTML, JSON
// Schema, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, list fieldlist.List, opts RenderOptions) ([]byte, error)
}
