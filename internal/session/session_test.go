package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"revisio-backend/internal/models"
	"revisio-backend/internal/review"
)

func testCards(n int) []models.FlashcardCard {
	cards := make([]models.FlashcardCard, n)
	for i := range cards {
		cards[i] = models.FlashcardCard{ID: uuid.New(), Front: "front", Back: "back", Position: i}
	}
	return cards
}

func seedPtr(v uint64) *uint64 { return &v }

func TestManagerFlashcardSessionLifecycle(t *testing.T) {
	m := NewManager(nil, time.Hour)
	userID := uuid.New()
	deckID := uuid.New()

	s := m.StartFlashcards(userID, deckID, testCards(3), review.Sequential, seedPtr(1))

	got, ok := m.Get(s.ID)
	if !ok || got.ID != s.ID {
		t.Fatal("Expected session to be retrievable")
	}

	v := s.View()
	if v.State != "studying" {
		t.Errorf("Expected studying state, got %s", v.State)
	}
	if v.Meta == nil || v.Meta.Seen {
		t.Error("Expected fresh unseen current item")
	}

	if !s.Correct() {
		t.Fatal("Expected Correct to succeed")
	}
	if !s.Incorrect() {
		t.Fatal("Expected Incorrect to succeed")
	}

	job, ok := m.End(context.Background(), s.ID)
	if !ok {
		t.Fatal("Expected End to succeed")
	}
	if job.CorrectCount != 1 || job.IncorrectCount != 1 {
		t.Errorf("Expected 1/1 tallies, got %d/%d", job.CorrectCount, job.IncorrectCount)
	}
	if job.Kind != "flashcards" || job.ResourceID != deckID {
		t.Errorf("Expected flashcards result for deck, got %+v", job)
	}

	if _, ok := m.Get(s.ID); ok {
		t.Error("Expected ended session to be gone")
	}
	if _, ok := m.End(context.Background(), s.ID); ok {
		t.Error("Expected double End to report missing session")
	}
}

func TestSessionExhaustionIsAState(t *testing.T) {
	m := NewManager(nil, time.Hour)

	s := m.StartFlashcards(uuid.New(), uuid.New(), testCards(2), review.Sequential, seedPtr(1))
	s.Ban()
	s.Ban()

	v := s.View()
	if v.State != "exhausted" {
		t.Errorf("Expected exhausted state, got %s", v.State)
	}
	if v.Stats.Banned != 2 {
		t.Errorf("Expected 2 banned, got %d", v.Stats.Banned)
	}
	if s.Correct() {
		t.Error("Expected judgement on exhausted session to report false")
	}

	// Unban recovers
	if !s.Unban(0) {
		t.Fatal("Expected Unban to succeed")
	}
	if v := s.View(); v.State != "studying" {
		t.Errorf("Expected studying after unban, got %s", v.State)
	}
}

func TestSessionUndoAndBannedListing(t *testing.T) {
	m := NewManager(nil, time.Hour)

	s := m.StartQuiz(uuid.New(), uuid.New(), []models.QuizQuestion{
		{ID: uuid.New(), Prompt: "q1", Answer: "a1"},
		{ID: uuid.New(), Prompt: "q2", Answer: "a2"},
	}, review.Sequential, seedPtr(1))

	if s.Undo() {
		t.Error("Expected nothing to undo on a fresh session")
	}

	before := s.View().Current
	s.Correct()
	if !s.Undo() {
		t.Fatal("Expected Undo to succeed")
	}
	if s.View().Current.(models.QuizQuestion).ID != before.(models.QuizQuestion).ID {
		t.Error("Expected Undo to restore the prior current item")
	}

	s.Ban()
	banned := s.Banned()
	if len(banned) != 1 {
		t.Fatalf("Expected one banned payload, got %d", len(banned))
	}
	if s.Unban(5) {
		t.Error("Expected out-of-range unban to report false")
	}
}

func TestDiagramSessionTwoLevel(t *testing.T) {
	m := NewManager(nil, time.Hour)

	d1 := models.Diagram{ID: uuid.New(), Title: "heart"}
	d2 := models.Diagram{ID: uuid.New(), Title: "lung"}
	cards := []DiagramCard{
		{Diagram: d1, Labels: []models.DiagramLabel{
			{ID: uuid.New(), DiagramID: d1.ID, Text: "aorta"},
			{ID: uuid.New(), DiagramID: d1.ID, Text: "ventricle"},
		}},
		{Diagram: d2, Labels: []models.DiagramLabel{
			{ID: uuid.New(), DiagramID: d2.ID, Text: "trachea"},
		}},
	}

	s := m.StartDiagrams(uuid.New(), cards, review.Sequential, review.Sequential, seedPtr(1))

	v := s.View()
	if v.State != string(review.StudyingLabel) {
		t.Fatalf("Expected studying_label, got %s", v.State)
	}
	if v.CurrentCard.(models.Diagram).ID != d1.ID {
		t.Error("Expected first diagram current")
	}

	// hit-test booleans come from the client
	s.Answer(true)
	s.Answer(true)

	if v := s.View(); v.State != string(review.CardComplete) {
		t.Fatalf("Expected card_complete, got %s", v.State)
	}

	if !s.NextCard() {
		t.Fatal("Expected NextCard to succeed")
	}
	v = s.View()
	if v.State != string(review.StudyingLabel) {
		t.Fatalf("Expected studying_label on next card, got %s", v.State)
	}
	if v.CurrentCard.(models.Diagram).ID != d2.ID {
		t.Error("Expected second diagram current")
	}
	if v.CardStats == nil || v.CardStats.CorrectCount != 1 {
		t.Errorf("Expected clean card to tally correct, got %+v", v.CardStats)
	}
}

func TestNextCardOnSingleLevelSession(t *testing.T) {
	m := NewManager(nil, time.Hour)
	s := m.StartFlashcards(uuid.New(), uuid.New(), testCards(2), review.Sequential, seedPtr(1))

	if s.NextCard() {
		t.Error("Expected NextCard to be refused on a flashcard session")
	}
}

func TestManagerEvictsIdleSessions(t *testing.T) {
	m := NewManager(nil, time.Millisecond)
	s := m.StartFlashcards(uuid.New(), uuid.New(), testCards(1), review.Sequential, seedPtr(1))

	time.Sleep(5 * time.Millisecond)
	m.evictIdle()

	if _, ok := m.Get(s.ID); ok {
		t.Error("Expected idle session to be evicted")
	}
}
