// Package playground wires the field list operations, the undo/redo history,
// and the schema converters into a single editing session. A Session is the
// only writer of its field list: every accepted edit becomes exactly one
// history entry, and rejected edits leave both the list and the history
// untouched.
package playground
