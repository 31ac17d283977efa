package template

import (
	"io"
)

// Executor runs a named template from an engine's template set. It is all the
// preview renderer asks of an engine, so tests can stub it with one method.
type Executor interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}

// Engine is the full surface of a github.com/goliatone/go-template style
// engine: named and inline templates, custom filters and shared globals.
type Engine interface {
	Executor
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
