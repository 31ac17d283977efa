// Package history provides a linear undo/redo stack over immutable snapshots.
package history

// History tracks a current value with undo and redo stacks. The undo stack is
// ordered oldest to newest; the redo stack newest to oldest, so the next redo
// candidate sits at index 0.
//
// History is not safe for concurrent use; callers serialise access.
type History[T any] struct {
	current T
	undo    []T
	redo    []T
	limit   int
}

// Option configures a History.
type Option func(*config)

type config struct {
	limit int
}

// WithLimit bounds the undo stack to n entries, discarding the oldest
// snapshots first. n <= 0 keeps the stack unbounded.
func WithLimit(n int) Option {
	return func(cfg *config) {
		cfg.limit = n
	}
}

// New creates a History whose current value is initial and whose stacks are
// empty.
func New[T any](initial T, options ...Option) *History[T] {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &History[T]{current: initial, limit: cfg.limit}
}

// Current returns the current value.
func (h *History[T]) Current() T {
	return h.current
}

// Set commits next as the new current value. The previous value moves onto
// the undo stack and the redo stack is cleared, even when next equals the
// current value.
func (h *History[T]) Set(next T) {
	h.undo = append(h.undo, h.current)
	if h.limit > 0 && len(h.undo) > h.limit {
		drop := len(h.undo) - h.limit
		h.undo = append([]T(nil), h.undo[drop:]...)
	}
	h.redo = nil
	h.current = next
}

// Undo restores the most recent undo entry. It reports false and does nothing
// when there is nothing to undo.
func (h *History[T]) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	last := len(h.undo) - 1
	prev := h.undo[last]
	h.undo = h.undo[:last:last]
	h.redo = append([]T{h.current}, h.redo...)
	h.current = prev
	return true
}

// Redo re-applies the first redo entry. It reports false and does nothing when
// there is nothing to redo.
func (h *History[T]) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	next := h.redo[0]
	h.redo = h.redo[1:]
	h.undo = append(h.undo, h.current)
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = append([]T(nil), h.undo[len(h.undo)-h.limit:]...)
	}
	h.current = next
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History[T]) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (h *History[T]) CanRedo() bool {
	return len(h.redo) > 0
}

// Snapshot is a copy of the history state, mostly useful for inspection and
// tests.
type Snapshot[T any] struct {
	Current T
	Undo    []T
	Redo    []T
}

// Snapshot returns copies of the current value slot and both stacks. Values
// themselves are not deep-copied.
func (h *History[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{
		Current: h.current,
		Undo:    append([]T(nil), h.undo...),
		Redo:    append([]T(nil), h.redo...),
	}
}

// Depth returns the sizes of the undo and redo stacks.
func (h *History[T]) Depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}
