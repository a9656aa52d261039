package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"revisio-backend/internal/middleware"
	"revisio-backend/internal/models"
	"revisio-backend/internal/repository"
)

type QuizHandler struct {
	quizRepo *repository.QuizRepo
}

func NewQuizHandler(quizRepo *repository.QuizRepo) *QuizHandler {
	return &QuizHandler{quizRepo: quizRepo}
}

func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "title is required", r))
		return
	}
	if len(req.Questions) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "questions must not be empty", r))
		return
	}
	for _, q := range req.Questions {
		if q.Prompt == "" || q.Answer == "" {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "every question needs a prompt and an answer", r))
			return
		}
	}

	userID := middleware.GetUserID(r.Context())

	quiz := &models.Quiz{
		UserID:        userID,
		Title:         req.Title,
		QuestionCount: len(req.Questions),
	}

	questions := make([]models.QuizQuestion, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = models.QuizQuestion{Prompt: q.Prompt, Answer: q.Answer, Position: i}
	}

	if err := h.quizRepo.Create(r.Context(), quiz, questions); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create quiz", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"quiz":      quiz,
		"questions": questions,
	})
}

func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	quizzes, err := h.quizRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch quizzes", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"quizzes": quizzes})
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	quiz, err := h.quizRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Quiz not found", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if quiz.UserID != userID {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return
	}

	questions, _ := h.quizRepo.GetQuestions(r.Context(), id)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quiz":      quiz,
		"questions": questions,
	})
}

func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	quiz, err := h.quizRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Quiz not found", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if quiz.UserID != userID {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return
	}

	if err := h.quizRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete quiz", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Quiz deleted"})
}
