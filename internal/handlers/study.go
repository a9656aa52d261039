package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"revisio-backend/internal/middleware"
	"revisio-backend/internal/repository"
	"revisio-backend/internal/review"
	"revisio-backend/internal/session"
)

type StudyHandler struct {
	sessions    *session.Manager
	flashRepo   *repository.FlashcardRepo
	quizRepo    *repository.QuizRepo
	diagramRepo *repository.DiagramRepo
	resultRepo  *repository.ResultRepo
}

func NewStudyHandler(
	sessions *session.Manager,
	flashRepo *repository.FlashcardRepo,
	quizRepo *repository.QuizRepo,
	diagramRepo *repository.DiagramRepo,
	resultRepo *repository.ResultRepo,
) *StudyHandler {
	return &StudyHandler{
		sessions:    sessions,
		flashRepo:   flashRepo,
		quizRepo:    quizRepo,
		diagramRepo: diagramRepo,
		resultRepo:  resultRepo,
	}
}

type startRequest struct {
	Mode review.Mode `json:"mode"`
	Seed *uint64     `json:"seed,omitempty"`
}

type startDiagramRequest struct {
	CardMode        review.Mode `json:"card_mode"`
	LabelMode       review.Mode `json:"label_mode"`
	Seed            *uint64     `json:"seed,omitempty"`
	ExtraDiagramIDs []uuid.UUID `json:"extra_diagram_ids,omitempty"`
}

func (h *StudyHandler) StartFlashcards(w http.ResponseWriter, r *http.Request) {
	deckID, err := uuid.Parse(chi.URLParam(r, "deckID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Mode == "" {
		req.Mode = review.Spaced
	}
	if !review.ValidMode(req.Mode) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "mode must be spaced, random or sequential", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	deck, err := h.flashRepo.GetDeckByID(r.Context(), deckID)
	if err != nil || deck.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	cards, err := h.flashRepo.GetCardsByDeck(r.Context(), deckID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch cards", r))
		return
	}
	if len(cards) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Deck has no cards", r))
		return
	}

	s := h.sessions.StartFlashcards(userID, deckID, cards, req.Mode, req.Seed)
	writeJSON(w, http.StatusCreated, s.View())
}

func (h *StudyHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := uuid.Parse(chi.URLParam(r, "quizID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Mode == "" {
		req.Mode = review.Spaced
	}
	if !review.ValidMode(req.Mode) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "mode must be spaced, random or sequential", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	quiz, err := h.quizRepo.GetByID(r.Context(), quizID)
	if err != nil || quiz.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Quiz not found", r))
		return
	}

	questions, err := h.quizRepo.GetQuestions(r.Context(), quizID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch questions", r))
		return
	}
	if len(questions) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Quiz has no questions", r))
		return
	}

	s := h.sessions.StartQuiz(userID, quizID, questions, req.Mode, req.Seed)
	writeJSON(w, http.StatusCreated, s.View())
}

func (h *StudyHandler) StartDiagrams(w http.ResponseWriter, r *http.Request) {
	diagramID, err := uuid.Parse(chi.URLParam(r, "diagramID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid diagram ID", r))
		return
	}

	var req startDiagramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.CardMode == "" {
		req.CardMode = review.Sequential
	}
	if req.LabelMode == "" {
		req.LabelMode = review.Spaced
	}
	if !review.ValidMode(req.CardMode) || !review.ValidMode(req.LabelMode) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "mode must be spaced, random or sequential", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	ids := append([]uuid.UUID{diagramID}, req.ExtraDiagramIDs...)
	cards := make([]session.DiagramCard, 0, len(ids))
	for _, id := range ids {
		diagram, err := h.diagramRepo.GetByID(r.Context(), id)
		if err != nil || diagram.UserID != userID {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Diagram not found", r))
			return
		}
		labels, err := h.diagramRepo.GetLabels(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch labels", r))
			return
		}
		cards = append(cards, session.DiagramCard{Diagram: *diagram, Labels: labels})
	}

	s := h.sessions.StartDiagrams(userID, cards, req.CardMode, req.LabelMode, req.Seed)
	writeJSON(w, http.StatusCreated, s.View())
}

// sessionFor resolves {id} and enforces ownership. A false return means the
// response has already been written.
func (h *StudyHandler) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return nil, false
	}

	s, ok := h.sessions.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found", r))
		return nil, false
	}

	if s.UserID != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return nil, false
	}

	return s, true
}

func (h *StudyHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *StudyHandler) Correct(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	s.Correct()
	writeJSON(w, http.StatusOK, s.View())
}

func (h *StudyHandler) Incorrect(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	s.Incorrect()
	writeJSON(w, http.StatusOK, s.View())
}

func (h *StudyHandler) Unsure(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	s.Unsure()
	writeJSON(w, http.StatusOK, s.View())
}

func (h *StudyHandler) Answer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	var req struct {
		Correct bool `json:"correct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	s.Answer(req.Correct)
	writeJSON(w, http.StatusOK, s.View())
}

func (h *StudyHandler) Ban(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	s.Ban()
	writeJSON(w, http.StatusOK, s.View())
}

func (h *StudyHandler) Unban(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	unbanned := s.Unban(req.Index)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"unbanned": unbanned,
		"session":  s.View(),
	})
}

func (h *StudyHandler) Skip(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	s.Skip()
	writeJSON(w, http.StatusOK, s.View())
}

func (h *StudyHandler) Undo(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	undone := s.Undo()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"undone":  undone,
		"session": s.View(),
	})
}

func (h *StudyHandler) Restart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	s.Restart()
	writeJSON(w, http.StatusOK, s.View())
}

func (h *StudyHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	s.Shuffle()
	writeJSON(w, http.StatusOK, s.View())
}

func (h *StudyHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	var req struct {
		Mode review.Mode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if !review.ValidMode(req.Mode) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "mode must be spaced, random or sequential", r))
		return
	}

	s.SetMode(req.Mode)
	writeJSON(w, http.StatusOK, s.View())
}

func (h *StudyHandler) NextCard(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	advanced := s.NextCard()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"advanced": advanced,
		"session":  s.View(),
	})
}

func (h *StudyHandler) Banned(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"banned": s.Banned()})
}

func (h *StudyHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Heartbeat(r.Context(), s.ResourceID, s.UserID, 30*time.Second); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to record heartbeat", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (h *StudyHandler) Presence(w http.ResponseWriter, r *http.Request) {
	resourceID, err := uuid.Parse(chi.URLParam(r, "resourceID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid resource ID", r))
		return
	}

	users, err := h.sessions.Presence(r.Context(), resourceID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch presence", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *StudyHandler) End(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	job, ok := h.sessions.End(r.Context(), s.ID)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"result": job})
}

func (h *StudyHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	results, err := h.resultRepo.ListByUser(r.Context(), userID, 50)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch results", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
