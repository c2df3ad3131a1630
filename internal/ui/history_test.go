package ui

import (
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
)

func sprites(n int) []model.Item {
	items := make([]model.Item, n)
	for i := range items {
		items[i] = model.NewItemID(string(rune('a'+i)), float64(10*(i+1)), 10)
	}
	return items
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, model.DefaultSettings(), "initial"))

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	current := MakeSnapshot(sprites(1), model.DefaultSettings(), "current")
	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if len(restored.Items) != 0 {
		t.Errorf("expected 0 items after undo, got %d", len(restored.Items))
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRestoresSettings(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(sprites(2), model.DefaultSettings(), "before settings"))

	changed := model.PackSettings{TargetFill: 0.8, Tolerance: 0.01}
	restored, ok := h.Undo(MakeSnapshot(sprites(2), changed, "after"))
	if !ok {
		t.Fatal("undo should succeed")
	}
	if restored.Settings != model.DefaultSettings() {
		t.Errorf("expected default settings, got %+v", restored.Settings)
	}

	redone, ok := h.Redo(restored)
	if !ok || redone.Settings != changed {
		t.Errorf("redo should bring back %+v, got %+v", changed, redone.Settings)
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, model.DefaultSettings(), "empty"))

	if _, ok := h.Undo(MakeSnapshot(sprites(1), model.DefaultSettings(), "one")); !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	h.Push(MakeSnapshot(nil, model.DefaultSettings(), "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}

	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(nil, model.DefaultSettings(), ""))
	}

	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(nil, model.DefaultSettings(), "current")
	if _, ok := h.Undo(current); ok {
		t.Error("undo on empty history should return false")
	}
	if _, ok := h.Redo(current); ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, model.DefaultSettings(), "a"))
	h.Push(MakeSnapshot(nil, model.DefaultSettings(), "b"))
	h.Undo(MakeSnapshot(nil, model.DefaultSettings(), "current"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestSnapshotCopiesItems(t *testing.T) {
	original := sprites(1)
	snap := MakeSnapshot(original, model.DefaultSettings(), "test")

	original[0].Label = "Modified"
	original[0].W = 999

	if snap.Items[0].Label != "" || snap.Items[0].W != 10 {
		t.Error("snapshot should be independent of original slice")
	}
}

func TestCopyNilItems(t *testing.T) {
	if snap := MakeSnapshot(nil, model.DefaultSettings(), "nil test"); snap.Items != nil {
		t.Error("nil items should stay nil")
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory()
	s := model.DefaultSettings()

	h.Push(MakeSnapshot(nil, s, "empty"))
	h.Push(MakeSnapshot(sprites(1), s, "1 item"))
	h.Push(MakeSnapshot(sprites(2), s, "2 items"))
	current := MakeSnapshot(sprites(3), s, "3 items")

	snap, ok := h.Undo(current)
	if !ok || len(snap.Items) != 2 {
		t.Fatalf("first undo: expected 2 items, got %d", len(snap.Items))
	}
	snap, ok = h.Undo(snap)
	if !ok || len(snap.Items) != 1 {
		t.Fatalf("second undo: expected 1 item, got %d", len(snap.Items))
	}
	snap, ok = h.Undo(snap)
	if !ok || len(snap.Items) != 0 {
		t.Fatalf("third undo: expected 0 items, got %d", len(snap.Items))
	}
	if h.CanUndo() {
		t.Error("should not be able to undo further")
	}

	for want := 1; want <= 3; want++ {
		snap, ok = h.Redo(snap)
		if !ok || len(snap.Items) != want {
			t.Fatalf("redo: expected %d items, got %d", want, len(snap.Items))
		}
	}
	if h.CanRedo() {
		t.Error("should not be able to redo further")
	}
}
