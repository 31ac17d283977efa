// Package template defines the template engine seam used by the preview
// renderer. The gotemplate subpackage provides the pongo2 backed engine.
package template
