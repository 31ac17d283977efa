// Package jsonschema converts between a builder field list and the pair of
// documents the playground emits: a JSON Schema object describing the fields,
// and a UI schema map carrying per-field rendering hints.
//
// Export is total and deterministic. Import accepts the five JSON-Schema
// primitives the builder can map (string, number, boolean, array, object) and
// rejects anything else without producing a partial result. Property order is
// significant in both directions: it is the field order of the builder.
package jsonschema
