// Package validation checks data against documents produced by the
// jsonschema package. Submitted values are validated through kin-openapi, and
// pasted schema documents are checked for import compatibility before they
// reach a session.
package validation
