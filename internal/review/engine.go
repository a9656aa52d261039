package review

import "math/rand/v2"

// Stats is the caller-visible breakdown of a pass. The tallies count
// first attempts only and are not rolled back by Undo.
type Stats struct {
	NotSeen        int `json:"not_seen"`
	Learning       int `json:"learning"`
	Mastered       int `json:"mastered"`
	Banned         int `json:"banned"`
	CorrectCount   int `json:"correct_count"`
	IncorrectCount int `json:"incorrect_count"`
}

// Engine is the full study surface over one deck: the deck's rotation
// plus first-attempt score tracking keyed by an identity accessor.
type Engine[T any] struct {
	deck    *Deck[T]
	tracker *Tracker
	id      func(T) string
}

// NewEngine builds an engine over payloads. id extracts a stable
// identity from a payload so re-presentations are recognized by the
// tracker.
func NewEngine[T any](payloads []T, mode Mode, id func(T) string, rng *rand.Rand) *Engine[T] {
	return &Engine[T]{
		deck:    NewDeck(payloads, mode, rng),
		tracker: NewTracker(),
		id:      id,
	}
}

func (e *Engine[T]) Current() (T, bool) { return e.deck.Current() }
func (e *Engine[T]) CurrentMeta() (Meta, bool) { return e.deck.CurrentMeta() }
func (e *Engine[T]) Exhausted() bool { return e.deck.Exhausted() }
func (e *Engine[T]) ActiveCount() int { return e.deck.ActiveCount() }
func (e *Engine[T]) Mode() Mode { return e.deck.Mode() }
func (e *Engine[T]) BannedPayloads() []T { return e.deck.BannedPayloads() }
func (e *Engine[T]) CanUndo() bool { return e.deck.CanUndo() }

// Correct scores the current item as known, tallying a first attempt.
func (e *Engine[T]) Correct() bool {
	it, ok := e.deck.currentItem()
	if !ok {
		return false
	}
	e.tracker.Record(e.id(it.Payload), true)
	return e.deck.Correct()
}

// Incorrect scores the current item as missed.
func (e *Engine[T]) Incorrect() bool {
	it, ok := e.deck.currentItem()
	if !ok {
		return false
	}
	e.tracker.Record(e.id(it.Payload), false)
	return e.deck.Incorrect()
}

// Unsure scores the current item as shaky. A first-attempt Unsure
// counts against the incorrect tally, same as a miss.
func (e *Engine[T]) Unsure() bool {
	it, ok := e.deck.currentItem()
	if !ok {
		return false
	}
	e.tracker.Record(e.id(it.Payload), false)
	return e.deck.Unsure()
}

// Ban excludes the current item without recording a judgement.
func (e *Engine[T]) Ban() bool { return e.deck.Ban() }

func (e *Engine[T]) Unban(idx int) bool { return e.deck.Unban(idx) }

func (e *Engine[T]) Skip() bool { return e.deck.Skip() }

func (e *Engine[T]) Shuffle() { e.deck.Shuffle() }

// Undo restores the previous deck order. Score tallies stay as
// recorded; going back re-shows the prior card without erasing counts.
func (e *Engine[T]) Undo() bool { return e.deck.Undo() }

// Restart begins a new pass and zeroes the tallies. Bans stay.
func (e *Engine[T]) Restart() {
	e.deck.Restart()
	e.tracker.Reset()
}

// SetMode switches policy with a full restart, tallies included.
func (e *Engine[T]) SetMode(mode Mode) {
	e.deck.SetMode(mode)
	e.tracker.Reset()
}

// Answered reports whether the current item already received its
// first-attempt judgement this pass.
func (e *Engine[T]) Answered() bool {
	it, ok := e.deck.currentItem()
	if !ok {
		return false
	}
	return e.tracker.Answered(e.id(it.Payload))
}

func (e *Engine[T]) Stats() Stats {
	notSeen, learning, mastered, banned := e.deck.counts()
	return Stats{
		NotSeen:        notSeen,
		Learning:       learning,
		Mastered:       mastered,
		Banned:         banned,
		CorrectCount:   e.tracker.Correct(),
		IncorrectCount: e.tracker.Incorrect(),
	}
}
