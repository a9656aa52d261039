package review

import (
	"math/rand/v2"
	"sort"
)

// Deck is an ordered rotation of review items. Index 0 is the current
// item. Scoring operations pop the head, adjust its metadata, and
// splice it back in at a position chosen by the active mode's policy.
//
// A Deck is single-threaded by contract: it is owned by exactly one
// study session and performs pure in-memory mutations.
type Deck[T any] struct {
	items   []Item[T]
	mode    Mode
	rng     *rand.Rand
	history *History[T]
}

// NewDeck builds a deck from payloads in the given order. Spaced and
// Random decks are shuffled up front; Sequential decks keep input
// order. A nil rng falls back to an ambient-seeded source; tests pass a
// seeded one.
func NewDeck[T any](payloads []T, mode Mode, rng *rand.Rand) *Deck[T] {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	items := make([]Item[T], len(payloads))
	for i, p := range payloads {
		items[i] = Item[T]{Payload: p, ord: i}
	}
	d := &Deck[T]{
		items:   items,
		mode:    mode,
		rng:     rng,
		history: NewHistory[T](),
	}
	if mode != Sequential {
		d.shuffleItems()
	}
	return d
}

// Current returns the head payload, or false when the deck is exhausted
// (no active items, including the zero-payload deck).
func (d *Deck[T]) Current() (T, bool) {
	if d.Exhausted() {
		var zero T
		return zero, false
	}
	return d.items[0].Payload, true
}

// CurrentMeta returns the head item's scheduling metadata.
func (d *Deck[T]) CurrentMeta() (Meta, bool) {
	if d.Exhausted() {
		return Meta{}, false
	}
	return d.items[0].meta(), true
}

func (d *Deck[T]) currentItem() (Item[T], bool) {
	if d.Exhausted() {
		return Item[T]{}, false
	}
	return d.items[0], true
}

// ActiveCount is the number of items participating in rotation.
func (d *Deck[T]) ActiveCount() int {
	n := 0
	for i := range d.items {
		if d.items[i].Difficulty != Banned {
			n++
		}
	}
	return n
}

// Exhausted reports the terminal state: no active items remain. A deck
// of banned-only items is exhausted but still lists its banned items.
func (d *Deck[T]) Exhausted() bool {
	return d.ActiveCount() == 0
}

func (d *Deck[T]) Len() int { return len(d.items) }
func (d *Deck[T]) Mode() Mode { return d.mode }

// Correct judges the current item as known. On a first judgement the
// item earns masteredOnFirstTry; difficulty steps toward 0 and the item
// is deferred by the active mode's policy.
func (d *Deck[T]) Correct() bool {
	if d.Exhausted() {
		return false
	}
	d.history.Push(d.items)
	it := d.items[0]
	if !it.Seen {
		it.Seen = true
		it.MasteredOnFirstTry = true
	}
	if it.Difficulty > 0 {
		it.Difficulty--
	}
	d.reinsert(it, d.policyPosition(it.Difficulty))
	d.autoSkip()
	return true
}

// Incorrect judges the current item as missed. Difficulty jumps to the
// current maximum and, in Spaced mode, the item reappears within two
// slots regardless of deck size. A miss clears masteredOnFirstTry even
// if it was earned earlier in the pass.
func (d *Deck[T]) Incorrect() bool {
	if d.Exhausted() {
		return false
	}
	d.history.Push(d.items)
	it := d.items[0]
	it.Seen = true
	it.MasteredOnFirstTry = false
	it.Difficulty = MaxDifficulty(d.ActiveCount())

	remaining := len(d.items) - 1
	var pos int
	switch d.mode {
	case Spaced:
		// fixed near-immediate offset, not the general formula
		pos = 2
		if pos > remaining {
			pos = remaining
		}
	case Random:
		pos = RandomInsertPosition(d.rng, remaining)
	default:
		pos = SequentialInsertPosition(remaining)
	}
	d.reinsert(it, pos)
	d.autoSkip()
	return true
}

// Unsure judges the current item as shaky: difficulty lands two below
// the maximum and reinsertion follows the general policy.
func (d *Deck[T]) Unsure() bool {
	if d.Exhausted() {
		return false
	}
	d.history.Push(d.items)
	it := d.items[0]
	it.Seen = true
	it.MasteredOnFirstTry = false
	it.Difficulty = MaxDifficulty(d.ActiveCount()) - 2
	if it.Difficulty < 0 {
		it.Difficulty = 0
	}
	d.reinsert(it, d.policyPosition(it.Difficulty))
	d.autoSkip()
	return true
}

// Ban excludes the current item from rotation. The item moves to the
// tail and stays in the deck so it can be listed and unbanned.
func (d *Deck[T]) Ban() bool {
	if d.Exhausted() {
		return false
	}
	d.history.Push(d.items)
	it := d.items[0]
	it.Difficulty = Banned
	d.items = append(d.items[1:], it)
	d.autoSkip()
	return true
}

// Unban reactivates the idx-th banned item (in deck order) at
// difficulty 0, leaving its position unchanged. Out-of-range indexes
// are a no-op returning false.
func (d *Deck[T]) Unban(idx int) bool {
	if idx < 0 {
		return false
	}
	seen := 0
	for i := range d.items {
		if d.items[i].Difficulty != Banned {
			continue
		}
		if seen == idx {
			d.history.Push(d.items)
			d.items[i].Difficulty = 0
			return true
		}
		seen++
	}
	return false
}

// BannedPayloads lists banned payloads in deck order; the index into
// this slice is the index Unban expects.
func (d *Deck[T]) BannedPayloads() []T {
	var out []T
	for i := range d.items {
		if d.items[i].Difficulty == Banned {
			out = append(out, d.items[i].Payload)
		}
	}
	return out
}

// Skip rotates the current item to the tail without scoring it. No-op
// when fewer than two items are active.
func (d *Deck[T]) Skip() bool {
	if d.ActiveCount() <= 1 {
		return false
	}
	d.history.Push(d.items)
	d.items = append(d.items[1:], d.items[0])
	d.autoSkip()
	return true
}

// Shuffle randomly permutes the deck without touching scoring fields or
// history.
func (d *Deck[T]) Shuffle() {
	d.shuffleItems()
	d.autoSkip()
}

// Restart begins a new pass: every item back to difficulty 0, unseen,
// first-try flag cleared. Bans are sticky; only Unban reopens a banned
// item. Spaced and Random decks reshuffle, Sequential decks return to
// input order. History is dropped with the old pass.
func (d *Deck[T]) Restart() {
	for i := range d.items {
		if d.items[i].Difficulty != Banned {
			d.items[i].Difficulty = 0
		}
		d.items[i].Seen = false
		d.items[i].MasteredOnFirstTry = false
	}
	if d.mode == Sequential {
		sort.Slice(d.items, func(i, j int) bool { return d.items[i].ord < d.items[j].ord })
	} else {
		d.shuffleItems()
	}
	d.history.Reset()
	d.autoSkip()
}

// SetMode switches the reinsertion policy. Mode switches are full
// restarts: all items go back to unseen.
func (d *Deck[T]) SetMode(mode Mode) {
	d.mode = mode
	d.Restart()
}

// Undo restores the deck to the snapshot taken before the most recent
// scoring or rotation mutation. Returns false when there is nothing to
// undo.
func (d *Deck[T]) Undo() bool {
	snap, ok := d.history.Undo()
	if !ok {
		return false
	}
	d.items = snap
	return true
}

func (d *Deck[T]) CanUndo() bool { return d.history.CanUndo() }

// counts breaks the deck down for stats: notSeen and learning and
// mastered cover active items only, banned counts the rest.
func (d *Deck[T]) counts() (notSeen, learning, mastered, banned int) {
	for i := range d.items {
		it := &d.items[i]
		switch {
		case it.Difficulty == Banned:
			banned++
		case !it.Seen:
			notSeen++
		case it.Difficulty == 0:
			mastered++
		default:
			learning++
		}
	}
	return
}

// policyPosition computes the reinsertion index for the general rule,
// recomputing maxDifficulty from the live active population first.
func (d *Deck[T]) policyPosition(difficulty int) int {
	remaining := len(d.items) - 1
	switch d.mode {
	case Spaced:
		return SpacedInsertPosition(MaxDifficulty(d.ActiveCount()), difficulty, remaining)
	case Random:
		return RandomInsertPosition(d.rng, remaining)
	default:
		return SequentialInsertPosition(remaining)
	}
}

// reinsert splices it back into the deck at pos, counted within the
// remaining items (head already conceptually removed).
func (d *Deck[T]) reinsert(it Item[T], pos int) {
	rest := d.items[1:]
	out := make([]Item[T], 0, len(d.items))
	out = append(out, rest[:pos]...)
	out = append(out, it)
	out = append(out, rest[pos:]...)
	d.items = out
}

// autoSkip rotates banned items off the head until an active item is
// current or none remain. These rotations are non-scoring and push no
// history.
func (d *Deck[T]) autoSkip() {
	if d.Exhausted() {
		return
	}
	for d.items[0].Difficulty == Banned {
		d.items = append(d.items[1:], d.items[0])
	}
}

func (d *Deck[T]) shuffleItems() {
	d.rng.Shuffle(len(d.items), func(i, j int) {
		d.items[i], d.items[j] = d.items[j], d.items[i]
	})
}
