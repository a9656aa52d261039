package review

import (
	"strconv"
	"testing"
)

func newTestEngine(n int, mode Mode) *Engine[int] {
	payloads := make([]int, n)
	for i := range payloads {
		payloads[i] = i
	}
	e := NewEngine(payloads, Sequential, strconv.Itoa, seededRand())
	e.deck.mode = mode
	return e
}

func TestEngineFirstAttemptOnlyScoring(t *testing.T) {
	e := newTestEngine(3, Sequential)

	e.Incorrect() // item 0 first attempt: a miss

	stats := e.Stats()
	if stats.IncorrectCount != 1 || stats.CorrectCount != 0 {
		t.Fatalf("Expected 0/1 after first miss, got %d/%d", stats.CorrectCount, stats.IncorrectCount)
	}

	// rotate item 0 back to the head without scoring the others
	e.Skip()
	e.Skip()
	if p, _ := e.Current(); p != 0 {
		t.Fatalf("Expected item 0 current, got %d", p)
	}

	e.Correct() // re-presentation: must not move the tallies

	stats = e.Stats()
	if stats.CorrectCount != 0 {
		t.Errorf("Expected correct count to stay 0, got %d", stats.CorrectCount)
	}
	if stats.IncorrectCount != 1 {
		t.Errorf("Expected incorrect count to stay 1, got %d", stats.IncorrectCount)
	}
}

func TestEngineUnsureCountsAsMiss(t *testing.T) {
	e := newTestEngine(2, Sequential)

	e.Unsure()

	stats := e.Stats()
	if stats.IncorrectCount != 1 || stats.CorrectCount != 0 {
		t.Errorf("Expected unsure to tally as a miss, got %d/%d", stats.CorrectCount, stats.IncorrectCount)
	}
}

func TestEngineUndoKeepsTallies(t *testing.T) {
	e := newTestEngine(3, Sequential)

	e.Correct()
	if !e.Undo() {
		t.Fatal("Expected Undo to succeed")
	}

	// Going back shows the prior card but does not erase the tally.
	stats := e.Stats()
	if stats.CorrectCount != 1 {
		t.Errorf("Expected correct count 1 after undo, got %d", stats.CorrectCount)
	}
	if p, _ := e.Current(); p != 0 {
		t.Errorf("Expected item 0 restored as current, got %d", p)
	}
}

func TestEngineStatsBreakdown(t *testing.T) {
	e := newTestEngine(4, Sequential)

	e.Correct()   // item 0: mastered
	e.Incorrect() // item 1: learning
	e.Ban()       // item 2: banned

	stats := e.Stats()
	if stats.Mastered != 1 {
		t.Errorf("Expected 1 mastered, got %d", stats.Mastered)
	}
	if stats.Learning != 1 {
		t.Errorf("Expected 1 learning, got %d", stats.Learning)
	}
	if stats.NotSeen != 1 {
		t.Errorf("Expected 1 not seen, got %d", stats.NotSeen)
	}
	if stats.Banned != 1 {
		t.Errorf("Expected 1 banned, got %d", stats.Banned)
	}
}

func TestEngineBanDoesNotTally(t *testing.T) {
	e := newTestEngine(2, Sequential)

	e.Ban()

	stats := e.Stats()
	if stats.CorrectCount != 0 || stats.IncorrectCount != 0 {
		t.Errorf("Expected ban to record no judgement, got %d/%d", stats.CorrectCount, stats.IncorrectCount)
	}
}

func TestEngineRestartResetsTallies(t *testing.T) {
	e := newTestEngine(3, Sequential)

	e.Correct()
	e.Incorrect()
	e.Restart()

	stats := e.Stats()
	if stats.CorrectCount != 0 || stats.IncorrectCount != 0 {
		t.Errorf("Expected zeroed tallies after restart, got %d/%d", stats.CorrectCount, stats.IncorrectCount)
	}
	if stats.NotSeen != 3 {
		t.Errorf("Expected all items unseen, got %d", stats.NotSeen)
	}
}

func TestEngineSetModeFullReset(t *testing.T) {
	e := newTestEngine(3, Sequential)

	e.Correct()
	e.SetMode(Spaced)

	if e.Mode() != Spaced {
		t.Errorf("Expected mode spaced, got %s", e.Mode())
	}
	stats := e.Stats()
	if stats.NotSeen != 3 || stats.CorrectCount != 0 {
		t.Errorf("Expected full reset on mode switch, got %+v", stats)
	}
}

func TestEngineExhaustedTerminalState(t *testing.T) {
	e := newTestEngine(2, Sequential)

	e.Ban()
	e.Ban()

	if !e.Exhausted() {
		t.Error("Expected engine to be exhausted")
	}
	if e.Correct() || e.Incorrect() || e.Unsure() {
		t.Error("Expected judgements on an exhausted engine to be no-ops")
	}
	if got := len(e.BannedPayloads()); got != 2 {
		t.Errorf("Expected 2 banned payloads, got %d", got)
	}

	// Unban recovers from the terminal state
	if !e.Unban(0) {
		t.Fatal("Expected Unban to succeed")
	}
	if e.Exhausted() {
		t.Error("Expected engine to be active again")
	}
}
