package review

import "testing"

func TestHistoryUndoEmpty(t *testing.T) {
	h := NewHistory[string]()

	if h.CanUndo() {
		t.Error("Expected fresh history to have nothing to undo")
	}
	if _, ok := h.Undo(); ok {
		t.Error("Expected Undo on fresh history to be a no-op")
	}
}

func TestHistoryPushUndo(t *testing.T) {
	h := NewHistory[string]()

	first := []Item[string]{{Payload: "a"}, {Payload: "b"}}
	second := []Item[string]{{Payload: "b"}, {Payload: "a", Seen: true}}

	h.Push(first)
	h.Push(second)

	snap, ok := h.Undo()
	if !ok {
		t.Fatal("Expected Undo to succeed")
	}
	if snap[0].Payload != "b" || !snap[1].Seen {
		t.Errorf("Expected most recent snapshot, got %+v", snap)
	}

	snap, ok = h.Undo()
	if !ok {
		t.Fatal("Expected second Undo to succeed")
	}
	if snap[0].Payload != "a" {
		t.Errorf("Expected oldest snapshot, got %+v", snap)
	}

	if _, ok := h.Undo(); ok {
		t.Error("Expected history to be exhausted")
	}
}

func TestHistoryTruncatesForward(t *testing.T) {
	h := NewHistory[int]()

	h.Push([]Item[int]{{Payload: 1}})
	h.Push([]Item[int]{{Payload: 2}})
	h.Undo()

	// New push after an undo discards the forward snapshot
	h.Push([]Item[int]{{Payload: 3}})

	snap, ok := h.Undo()
	if !ok {
		t.Fatal("Expected Undo to succeed")
	}
	if snap[0].Payload != 3 {
		t.Errorf("Expected snapshot 3, got %d", snap[0].Payload)
	}

	snap, ok = h.Undo()
	if !ok {
		t.Fatal("Expected Undo to succeed")
	}
	if snap[0].Payload != 1 {
		t.Errorf("Expected snapshot 1, got %d", snap[0].Payload)
	}
}

func TestHistorySnapshotIsolation(t *testing.T) {
	h := NewHistory[int]()

	items := []Item[int]{{Payload: 1}, {Payload: 2}}
	h.Push(items)
	items[0].Seen = true
	items[0].Difficulty = 3

	snap, _ := h.Undo()
	if snap[0].Seen || snap[0].Difficulty != 0 {
		t.Error("Expected snapshot to be isolated from later mutation")
	}
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory[int]()
	h.Push([]Item[int]{{Payload: 1}})
	h.Reset()

	if h.CanUndo() {
		t.Error("Expected reset history to be empty")
	}
}
