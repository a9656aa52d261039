package review

import "math/rand/v2"

// State of a two-level study session.
type State string

const (
	// StudyingLabel: the inner deck has a current item and judgements
	// route to it.
	StudyingLabel State = "studying_label"
	// CardComplete: every active inner item has been scored (or none
	// remain); an explicit NextCard advances the outer deck.
	CardComplete State = "card_complete"
	// Finished: the outer deck is exhausted.
	Finished State = "finished"
)

// Coordinator composes two decks one level deep: an outer deck of
// cards, each carrying its own deck of labels. Exhausting or fully
// scoring the current card's labels opens the transition to the next
// card, whose judgement derives from the labels' first attempts.
type Coordinator[C, L any] struct {
	outer    *Engine[C]
	inner    *Engine[L]
	labelsOf func(C) []L
	labelID  func(L) string

	innerMode Mode
	rng       *rand.Rand

	// first-attempt bookkeeping for the current card, cleared whenever
	// the inner deck is rebuilt
	answered map[string]bool
	missed   bool

	state State
}

// NewCoordinator builds a two-level session. labelsOf extracts the
// ordered labels of a card; cardID and labelID supply tracker
// identities. The inner deck is rebuilt from the outer head whenever it
// changes.
func NewCoordinator[C, L any](
	cards []C,
	outerMode, innerMode Mode,
	labelsOf func(C) []L,
	cardID func(C) string,
	labelID func(L) string,
	rng *rand.Rand,
) *Coordinator[C, L] {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	co := &Coordinator[C, L]{
		outer:     NewEngine(cards, outerMode, cardID, rng),
		labelsOf:  labelsOf,
		labelID:   labelID,
		innerMode: innerMode,
		rng:       rng,
	}
	co.rebuildInner()
	return co
}

func (co *Coordinator[C, L]) State() State { return co.state }

// InnerMode is the policy applied to each card's label deck.
func (co *Coordinator[C, L]) InnerMode() Mode { return co.innerMode }

// OuterMode is the policy applied to the card deck.
func (co *Coordinator[C, L]) OuterMode() Mode { return co.outer.Mode() }

// CurrentCard returns the outer head payload.
func (co *Coordinator[C, L]) CurrentCard() (C, bool) { return co.outer.Current() }

// CurrentLabel returns the inner head payload; false while the card is
// complete or the session finished.
func (co *Coordinator[C, L]) CurrentLabel() (L, bool) {
	if co.state != StudyingLabel {
		var zero L
		return zero, false
	}
	return co.inner.Current()
}

func (co *Coordinator[C, L]) CurrentLabelMeta() (Meta, bool) {
	if co.state != StudyingLabel {
		return Meta{}, false
	}
	return co.inner.CurrentMeta()
}

// Correct scores the current label as known.
func (co *Coordinator[C, L]) Correct() bool { return co.judge((*Engine[L]).Correct, false) }

// Incorrect scores the current label as missed; a first-attempt miss
// disqualifies the whole card from a Correct outer judgement.
func (co *Coordinator[C, L]) Incorrect() bool { return co.judge((*Engine[L]).Incorrect, true) }

// Unsure scores the current label as shaky. It tallies as a miss but
// does not by itself disqualify the card.
func (co *Coordinator[C, L]) Unsure() bool { return co.judge((*Engine[L]).Unsure, false) }

func (co *Coordinator[C, L]) judge(op func(*Engine[L]) bool, miss bool) bool {
	if co.state != StudyingLabel {
		return false
	}
	payload, ok := co.inner.Current()
	if !ok {
		return false
	}
	id := co.labelID(payload)
	if !co.answered[id] {
		co.answered[id] = true
		if miss {
			co.missed = true
		}
	}
	op(co.inner)
	co.refreshState()
	return true
}

// Ban excludes the current label. Banning the last unscored label can
// complete the card.
func (co *Coordinator[C, L]) Ban() bool {
	if co.state != StudyingLabel {
		return false
	}
	if !co.inner.Ban() {
		return false
	}
	co.refreshState()
	return true
}

func (co *Coordinator[C, L]) Unban(idx int) bool {
	if co.state == Finished {
		return false
	}
	if !co.inner.Unban(idx) {
		return false
	}
	co.refreshState()
	return true
}

func (co *Coordinator[C, L]) Skip() bool {
	if co.state != StudyingLabel {
		return false
	}
	return co.inner.Skip()
}

func (co *Coordinator[C, L]) Shuffle() {
	if co.state == Finished {
		return
	}
	co.inner.Shuffle()
}

// Undo restores the inner deck's previous order. The answered set and
// card-miss flag stay as recorded, matching the single-level quirk.
func (co *Coordinator[C, L]) Undo() bool {
	if co.state == Finished {
		return false
	}
	if !co.inner.Undo() {
		return false
	}
	co.refreshState()
	return true
}

// NextCard applies the derived judgement to the outer deck and rebuilds
// the inner deck from the new head. Correct only when the whole card
// was answered with no first-attempt miss. Valid only from
// CardComplete.
func (co *Coordinator[C, L]) NextCard() bool {
	if co.state != CardComplete {
		return false
	}
	if co.missed {
		co.outer.Incorrect()
	} else {
		co.outer.Correct()
	}
	co.rebuildInner()
	return true
}

// Restart begins a new pass over both levels.
func (co *Coordinator[C, L]) Restart() {
	co.outer.Restart()
	co.rebuildInner()
}

// SetOuterMode switches the card policy. A full outer restart, then a
// fresh inner deck for the new head.
func (co *Coordinator[C, L]) SetOuterMode(mode Mode) {
	co.outer.SetMode(mode)
	co.rebuildInner()
}

// SetInnerMode switches the label policy. The inner deck is rebuilt
// from scratch: mode switches are full restarts.
func (co *Coordinator[C, L]) SetInnerMode(mode Mode) {
	co.innerMode = mode
	co.rebuildInner()
}

func (co *Coordinator[C, L]) CardStats() Stats { return co.outer.Stats() }
func (co *Coordinator[C, L]) LabelStats() Stats {
	if co.inner == nil {
		return Stats{}
	}
	return co.inner.Stats()
}

func (co *Coordinator[C, L]) BannedLabels() []L {
	if co.inner == nil {
		return nil
	}
	return co.inner.BannedPayloads()
}

// rebuildInner constructs a fresh inner deck from the outer head's
// labels and clears the per-card bookkeeping.
func (co *Coordinator[C, L]) rebuildInner() {
	co.answered = make(map[string]bool)
	co.missed = false

	card, ok := co.outer.Current()
	if !ok {
		co.inner = nil
		co.state = Finished
		return
	}
	co.inner = NewEngine(co.labelsOf(card), co.innerMode, co.labelID, co.rng)
	co.refreshState()
}

// refreshState recomputes the state machine position. A card is
// complete when no active labels remain or every active label has been
// scored once; a card with zero labels is trivially complete.
func (co *Coordinator[C, L]) refreshState() {
	if co.inner == nil {
		co.state = Finished
		return
	}
	if co.inner.Exhausted() {
		co.state = CardComplete
		return
	}
	for i := range co.inner.deck.items {
		it := &co.inner.deck.items[i]
		if it.Difficulty != Banned && !co.answered[co.labelID(it.Payload)] {
			co.state = StudyingLabel
			return
		}
	}
	co.state = CardComplete
}
