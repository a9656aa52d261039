package review

import "slices"

// History is a snapshot-based undo stack over deck item sequences.
// Snapshots are full copies of the items slice; decks are small enough
// that structural snapshots beat a reversible-operation log.
type History[T any] struct {
	snapshots [][]Item[T]
	cursor    int // -1 means nothing to undo into
}

func NewHistory[T any]() *History[T] {
	return &History[T]{cursor: -1}
}

// Push records a copy of items, truncating any forward history beyond
// the cursor. Called before every scoring or rotation mutation.
func (h *History[T]) Push(items []Item[T]) {
	h.snapshots = append(h.snapshots[:h.cursor+1], slices.Clone(items))
	h.cursor++
}

// Undo returns the snapshot at the cursor and steps back, or false if
// there is no history to undo into.
func (h *History[T]) Undo() ([]Item[T], bool) {
	if h.cursor < 0 {
		return nil, false
	}
	snap := slices.Clone(h.snapshots[h.cursor])
	h.cursor--
	return snap, true
}

func (h *History[T]) CanUndo() bool {
	return h.cursor >= 0
}

// Reset drops all snapshots. Used when a deck restarts into a new pass.
func (h *History[T]) Reset() {
	h.snapshots = h.snapshots[:0]
	h.cursor = -1
}
