package review

// Tracker counts first-attempt judgements per item identity. Once an
// item has been answered, re-presentations after Incorrect or Unsure do
// not move the tallies again. The tracker is deliberately independent
// of the deck's own seen/mastered fields and is not rolled back by Undo.
type Tracker struct {
	correct   int
	incorrect int
	answered  map[string]bool
}

func NewTracker() *Tracker {
	return &Tracker{answered: make(map[string]bool)}
}

// Record tallies the judgement for id if this is its first attempt.
// Returns true when the judgement was counted.
func (t *Tracker) Record(id string, correct bool) bool {
	if t.answered[id] {
		return false
	}
	t.answered[id] = true
	if correct {
		t.correct++
	} else {
		t.incorrect++
	}
	return true
}

// Answered reports whether id has already received its first-attempt
// judgement.
func (t *Tracker) Answered(id string) bool {
	return t.answered[id]
}

func (t *Tracker) Correct() int { return t.correct }
func (t *Tracker) Incorrect() int { return t.incorrect }

// Reset clears all tallies for a new pass.
func (t *Tracker) Reset() {
	t.correct = 0
	t.incorrect = 0
	t.answered = make(map[string]bool)
}
