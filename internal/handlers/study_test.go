package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"revisio-backend/internal/middleware"
	"revisio-backend/internal/models"
	"revisio-backend/internal/review"
	"revisio-backend/internal/session"
)

// The session endpoints need no database: the manager is in-memory and a
// nil redis client disables publishing. Start routes are exercised at
// the manager level instead.

func newStudyRouter(h *StudyHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/study/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/correct", h.Correct)
		r.Post("/incorrect", h.Incorrect)
		r.Post("/unsure", h.Unsure)
		r.Post("/answer", h.Answer)
		r.Post("/ban", h.Ban)
		r.Post("/unban", h.Unban)
		r.Post("/skip", h.Skip)
		r.Post("/undo", h.Undo)
		r.Post("/restart", h.Restart)
		r.Put("/mode", h.SetMode)
		r.Get("/banned", h.Banned)
	})
	return r
}

func testCards(n int) []models.FlashcardCard {
	cards := make([]models.FlashcardCard, n)
	for i := range cards {
		cards[i] = models.FlashcardCard{ID: uuid.New(), Position: i}
	}
	return cards
}

func startTestSession(t *testing.T, n int) (*StudyHandler, *session.Session, uuid.UUID) {
	t.Helper()
	mgr := session.NewManager(nil, time.Hour)
	userID := uuid.New()
	seed := uint64(7)
	s := mgr.StartFlashcards(userID, uuid.New(), testCards(n), review.Sequential, &seed)
	return NewStudyHandler(mgr, nil, nil, nil, nil), s, userID
}

func doStudy(h *StudyHandler, userID uuid.UUID, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))

	rr := httptest.NewRecorder()
	newStudyRouter(h).ServeHTTP(rr, req)
	return rr
}

func TestStudyCorrectAdvances(t *testing.T) {
	h, s, userID := startTestSession(t, 3)

	rr := doStudy(h, userID, http.MethodPost, "/study/sessions/"+s.ID.String()+"/correct", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var view session.View
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if view.State != "studying" {
		t.Errorf("Expected state 'studying', got %q", view.State)
	}
	if view.Stats.CorrectCount != 1 {
		t.Errorf("Expected correct_count 1, got %d", view.Stats.CorrectCount)
	}
}

func TestStudySessionNotFound(t *testing.T) {
	h, _, userID := startTestSession(t, 3)

	rr := doStudy(h, userID, http.MethodGet, "/study/sessions/"+uuid.NewString(), nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestStudySessionOwnership(t *testing.T) {
	h, s, _ := startTestSession(t, 3)

	rr := doStudy(h, uuid.New(), http.MethodPost, "/study/sessions/"+s.ID.String()+"/correct", nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rr.Code)
	}
}

func TestStudyUndoEmptyHistory(t *testing.T) {
	h, s, userID := startTestSession(t, 3)

	rr := doStudy(h, userID, http.MethodPost, "/study/sessions/"+s.ID.String()+"/undo", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Undone bool `json:"undone"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Undone {
		t.Error("Expected undone=false on a fresh session")
	}
}

func TestStudyUnbanBadIndex(t *testing.T) {
	h, s, userID := startTestSession(t, 3)

	rr := doStudy(h, userID, http.MethodPost, "/study/sessions/"+s.ID.String()+"/unban", map[string]int{"index": 5})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Unbanned bool `json:"unbanned"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Unbanned {
		t.Error("Expected unbanned=false for an out-of-range index")
	}
}

func TestStudySetModeInvalid(t *testing.T) {
	h, s, userID := startTestSession(t, 3)

	rr := doStudy(h, userID, http.MethodPut, "/study/sessions/"+s.ID.String()+"/mode", map[string]string{"mode": "chronological"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestStudyBanAllExhausts(t *testing.T) {
	h, s, userID := startTestSession(t, 2)

	doStudy(h, userID, http.MethodPost, "/study/sessions/"+s.ID.String()+"/ban", nil)
	rr := doStudy(h, userID, http.MethodPost, "/study/sessions/"+s.ID.String()+"/ban", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var view session.View
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if view.State != "exhausted" {
		t.Errorf("Expected state 'exhausted' after banning every card, got %q", view.State)
	}

	banned := doStudy(h, userID, http.MethodGet, "/study/sessions/"+s.ID.String()+"/banned", nil)
	var list struct {
		Banned []json.RawMessage `json:"banned"`
	}
	if err := json.NewDecoder(banned.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode banned list: %v", err)
	}
	if len(list.Banned) != 2 {
		t.Errorf("Expected 2 banned cards, got %d", len(list.Banned))
	}
}

func TestStudyAnswerJudgesCurrent(t *testing.T) {
	h, s, userID := startTestSession(t, 3)

	rr := doStudy(h, userID, http.MethodPost, "/study/sessions/"+s.ID.String()+"/answer", map[string]bool{"correct": false})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var view session.View
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if view.Stats.IncorrectCount != 1 {
		t.Errorf("Expected incorrect_count 1, got %d", view.Stats.IncorrectCount)
	}
}
