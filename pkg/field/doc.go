// Package field defines the form field descriptor the builder edits: a closed
// set of field kinds, choice options, validation constraints, and the
// structured UI hints exported alongside the JSON Schema.
//
// Descriptors are plain values. Helpers in this package return modified
// copies so callers never share option or hint storage between snapshots.
package field
