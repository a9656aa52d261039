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

type FlashcardHandler struct {
	flashRepo *repository.FlashcardRepo
}

func NewFlashcardHandler(flashRepo *repository.FlashcardRepo) *FlashcardHandler {
	return &FlashcardHandler{flashRepo: flashRepo}
}

func (h *FlashcardHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "title is required", r))
		return
	}
	if len(req.Cards) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "cards must not be empty", r))
		return
	}
	for _, c := range req.Cards {
		if c.Front == "" || c.Back == "" {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "every card needs a front and a back", r))
			return
		}
	}

	userID := middleware.GetUserID(r.Context())

	deck := &models.FlashcardDeck{
		UserID:    userID,
		Title:     req.Title,
		CardCount: len(req.Cards),
	}

	cards := make([]models.FlashcardCard, len(req.Cards))
	for i, c := range req.Cards {
		cards[i] = models.FlashcardCard{Front: c.Front, Back: c.Back, Position: i}
	}

	if err := h.flashRepo.CreateDeck(r.Context(), deck, cards); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create deck", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"deck":  deck,
		"cards": cards,
	})
}

func (h *FlashcardHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	decks, err := h.flashRepo.ListDecksByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch decks", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"decks": decks})
}

func (h *FlashcardHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	deck, err := h.flashRepo.GetDeckByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if deck.UserID != userID {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return
	}

	cards, _ := h.flashRepo.GetCardsByDeck(r.Context(), id)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deck":  deck,
		"cards": cards,
	})
}

func (h *FlashcardHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	deck, err := h.flashRepo.GetDeckByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if deck.UserID != userID {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return
	}

	if err := h.flashRepo.DeleteDeck(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete deck", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deck deleted"})
}
