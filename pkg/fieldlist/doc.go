// Package fieldlist implements the pure list operations behind the builder
// canvas: append, replace, delete, single-element moves, and translating drag
// gestures into moves. Every operation returns a new list and leaves its input
// untouched, so results can be committed to history as snapshots.
package fieldlist
