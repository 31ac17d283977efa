package history

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistory_SetUndoRedo(t *testing.T) {
	h := New(0)
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("fresh history should have empty stacks")
	}

	h.Set(1)
	h.Set(2)
	h.Set(3)

	if !h.Undo() || h.Current() != 2 {
		t.Fatalf("undo: got %d", h.Current())
	}
	if !h.Undo() || h.Current() != 1 {
		t.Fatalf("undo: got %d", h.Current())
	}

	want := Snapshot[int]{Current: 1, Undo: []int{0}, Redo: []int{2, 3}}
	if diff := cmp.Diff(want, h.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	if !h.Redo() || h.Current() != 2 {
		t.Fatalf("redo: got %d", h.Current())
	}
	want = Snapshot[int]{Current: 2, Undo: []int{0, 1}, Redo: []int{3}}
	if diff := cmp.Diff(want, h.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_SetClearsRedoWithoutDedup(t *testing.T) {
	h := New("a")
	h.Set("b")
	h.Undo()
	if !h.CanRedo() {
		t.Fatalf("expected redo available")
	}

	h.Set("a")
	if h.CanRedo() {
		t.Fatalf("set must clear redo")
	}
	undo, redo := h.Depth()
	if undo != 1 || redo != 0 {
		t.Fatalf("depth mismatch: undo=%d redo=%d", undo, redo)
	}
}

func TestHistory_EmptyStacksAreNoOps(t *testing.T) {
	h := New(7)
	before := h.Snapshot()
	if h.Undo() {
		t.Fatalf("undo on empty stack reported success")
	}
	if h.Redo() {
		t.Fatalf("redo on empty stack reported success")
	}
	if diff := cmp.Diff(before, h.Snapshot()); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
}

func TestHistory_UndoThenRedoRestores(t *testing.T) {
	h := New(0)
	for i := 1; i <= 6; i++ {
		h.Set(i)
	}
	for n := 1; n <= 6; n++ {
		before := h.Current()
		for i := 0; i < n; i++ {
			h.Undo()
		}
		for i := 0; i < n; i++ {
			h.Redo()
		}
		if h.Current() != before {
			t.Fatalf("n=%d: want %d, got %d", n, before, h.Current())
		}
	}
}

func TestHistory_Deterministic(t *testing.T) {
	run := func() Snapshot[int] {
		h := New(0)
		h.Set(1)
		h.Set(2)
		h.Undo()
		h.Set(5)
		h.Undo()
		h.Undo()
		h.Redo()
		return h.Snapshot()
	}
	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Fatalf("history not deterministic:\n%s", diff)
	}
}

func TestHistory_WithLimit(t *testing.T) {
	h := New(0, WithLimit(2))
	h.Set(1)
	h.Set(2)
	h.Set(3)

	undo, _ := h.Depth()
	if undo != 2 {
		t.Fatalf("expected bounded undo stack of 2, got %d", undo)
	}
	h.Undo()
	h.Undo()
	if h.Undo() {
		t.Fatalf("oldest entry should have been discarded")
	}
	if h.Current() != 1 {
		t.Fatalf("expected 1 after exhausting bounded undo, got %d", h.Current())
	}
}
