package review

import "testing"

type testCard struct {
	id     string
	labels []string
}

func newTestCoordinator(cards []testCard) *Coordinator[testCard, string] {
	return NewCoordinator(
		cards,
		Sequential, Sequential,
		func(c testCard) []string { return c.labels },
		func(c testCard) string { return c.id },
		func(l string) string { return l },
		seededRand(),
	)
}

func TestCoordinatorTwoLevelCompletion(t *testing.T) {
	co := newTestCoordinator([]testCard{
		{id: "card1", labels: []string{"A", "B"}},
		{id: "card2", labels: []string{"C"}},
	})

	if co.State() != StudyingLabel {
		t.Fatalf("Expected studying_label, got %s", co.State())
	}

	if l, _ := co.CurrentLabel(); l != "A" {
		t.Fatalf("Expected label A, got %s", l)
	}
	co.Correct()

	if co.State() != StudyingLabel {
		t.Fatalf("Expected studying_label after one of two labels, got %s", co.State())
	}
	if l, _ := co.CurrentLabel(); l != "B" {
		t.Fatalf("Expected label B, got %s", l)
	}
	co.Correct()

	if co.State() != CardComplete {
		t.Fatalf("Expected card_complete, got %s", co.State())
	}

	// Judgements are refused while the card is complete
	if co.Correct() {
		t.Error("Expected judgement to be refused in card_complete")
	}

	if !co.NextCard() {
		t.Fatal("Expected NextCard to succeed")
	}
	if co.State() != StudyingLabel {
		t.Fatalf("Expected studying_label on the next card, got %s", co.State())
	}
	if c, _ := co.CurrentCard(); c.id != "card2" {
		t.Errorf("Expected card2 current, got %s", c.id)
	}
	if l, _ := co.CurrentLabel(); l != "C" {
		t.Errorf("Expected label C from rebuilt inner deck, got %s", l)
	}
	if meta, _ := co.CurrentLabelMeta(); meta.Seen {
		t.Error("Expected rebuilt inner deck to start unseen")
	}
}

func TestCoordinatorCleanCardJudgedCorrect(t *testing.T) {
	co := newTestCoordinator([]testCard{
		{id: "card1", labels: []string{"A"}},
		{id: "card2", labels: []string{"B"}},
	})

	co.Correct()
	co.NextCard()

	stats := co.CardStats()
	if stats.CorrectCount != 1 || stats.IncorrectCount != 0 {
		t.Errorf("Expected clean card to count correct, got %d/%d", stats.CorrectCount, stats.IncorrectCount)
	}
}

func TestCoordinatorMissedLabelDisqualifiesCard(t *testing.T) {
	co := newTestCoordinator([]testCard{
		{id: "card1", labels: []string{"A", "B"}},
		{id: "card2", labels: []string{"C"}},
	})

	co.Incorrect() // A: first-attempt miss
	co.Correct()   // B

	// A reappears until scored again, but the card is already answered
	// on all labels, so it completes once every label has a judgement.
	for co.State() == StudyingLabel {
		co.Correct()
	}

	co.NextCard()

	stats := co.CardStats()
	if stats.IncorrectCount != 1 {
		t.Errorf("Expected missed label to disqualify the card, got %+v", stats)
	}
}

func TestCoordinatorUnsureDoesNotDisqualify(t *testing.T) {
	co := newTestCoordinator([]testCard{
		{id: "card1", labels: []string{"A"}},
		{id: "card2", labels: []string{"B"}},
	})

	co.Unsure()
	for co.State() == StudyingLabel {
		co.Correct()
	}
	co.NextCard()

	stats := co.CardStats()
	if stats.CorrectCount != 1 {
		t.Errorf("Expected unsure-only card to stay correct, got %+v", stats)
	}
}

func TestCoordinatorZeroLabelCardTriviallyComplete(t *testing.T) {
	co := newTestCoordinator([]testCard{
		{id: "card1", labels: nil},
		{id: "card2", labels: []string{"A"}},
	})

	if co.State() != CardComplete {
		t.Fatalf("Expected zero-label card to be trivially complete, got %s", co.State())
	}
	if !co.NextCard() {
		t.Fatal("Expected NextCard to succeed")
	}
	if l, _ := co.CurrentLabel(); l != "A" {
		t.Errorf("Expected label A, got %s", l)
	}
}

func TestCoordinatorBanningLastLabelCompletesCard(t *testing.T) {
	co := newTestCoordinator([]testCard{
		{id: "card1", labels: []string{"A", "B"}},
	})

	co.Correct() // A scored
	co.Ban()     // B banned before scoring

	if co.State() != CardComplete {
		t.Errorf("Expected banning the last unscored label to complete the card, got %s", co.State())
	}
}

func TestCoordinatorNoCards(t *testing.T) {
	co := newTestCoordinator(nil)

	if co.State() != Finished {
		t.Fatalf("Expected finished with no cards, got %s", co.State())
	}
	if co.Correct() || co.NextCard() {
		t.Error("Expected all operations to be no-ops when finished")
	}
}

func TestCoordinatorRestart(t *testing.T) {
	co := newTestCoordinator([]testCard{
		{id: "card1", labels: []string{"A"}},
		{id: "card2", labels: []string{"B"}},
	})

	co.Incorrect()
	for co.State() == StudyingLabel {
		co.Correct()
	}
	co.NextCard()

	co.Restart()

	if co.State() != StudyingLabel {
		t.Fatalf("Expected studying_label after restart, got %s", co.State())
	}
	stats := co.CardStats()
	if stats.CorrectCount != 0 || stats.IncorrectCount != 0 {
		t.Errorf("Expected zeroed card tallies, got %+v", stats)
	}
	if c, _ := co.CurrentCard(); c.id != "card1" {
		t.Errorf("Expected sequential restart to return to card1, got %s", c.id)
	}
}

func TestCoordinatorSetInnerModeRebuilds(t *testing.T) {
	co := newTestCoordinator([]testCard{
		{id: "card1", labels: []string{"A", "B"}},
	})

	co.Correct()
	co.SetInnerMode(Sequential)

	if meta, _ := co.CurrentLabelMeta(); meta.Seen {
		t.Error("Expected inner mode switch to rebuild the deck unseen")
	}
	if stats := co.LabelStats(); stats.CorrectCount != 0 {
		t.Errorf("Expected fresh label tallies, got %+v", stats)
	}
}
