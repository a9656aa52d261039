package review

import "testing"

func TestTrackerFirstAttemptOnly(t *testing.T) {
	tr := NewTracker()

	if !tr.Record("x", false) {
		t.Error("Expected first judgement to be counted")
	}
	if tr.Incorrect() != 1 || tr.Correct() != 0 {
		t.Errorf("Expected 0/1, got %d/%d", tr.Correct(), tr.Incorrect())
	}

	// Re-presentation: a later correct answer must not move the tallies
	if tr.Record("x", true) {
		t.Error("Expected repeat judgement to be ignored")
	}
	if tr.Incorrect() != 1 || tr.Correct() != 0 {
		t.Errorf("Expected tallies unchanged, got %d/%d", tr.Correct(), tr.Incorrect())
	}

	if !tr.Answered("x") {
		t.Error("Expected x to be marked answered")
	}
	if tr.Answered("y") {
		t.Error("Expected y to be unanswered")
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	tr.Record("a", true)
	tr.Record("b", false)

	tr.Reset()

	if tr.Correct() != 0 || tr.Incorrect() != 0 {
		t.Errorf("Expected zeroed tallies, got %d/%d", tr.Correct(), tr.Incorrect())
	}
	if tr.Answered("a") {
		t.Error("Expected answered set to be cleared")
	}
}
