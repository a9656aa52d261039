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

type DiagramHandler struct {
	diagramRepo *repository.DiagramRepo
}

func NewDiagramHandler(diagramRepo *repository.DiagramRepo) *DiagramHandler {
	return &DiagramHandler{diagramRepo: diagramRepo}
}

func (h *DiagramHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDiagramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "title is required", r))
		return
	}
	if req.ImageURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "image_url is required", r))
		return
	}
	for _, l := range req.Labels {
		if l.Text == "" {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "every label needs text", r))
			return
		}
	}

	userID := middleware.GetUserID(r.Context())

	diagram := &models.Diagram{
		UserID:     userID,
		Title:      req.Title,
		ImageURL:   req.ImageURL,
		LabelCount: len(req.Labels),
	}

	labels := make([]models.DiagramLabel, len(req.Labels))
	for i, l := range req.Labels {
		labels[i] = models.DiagramLabel{Text: l.Text, X: l.X, Y: l.Y, Position: i}
	}

	if err := h.diagramRepo.Create(r.Context(), diagram, labels); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create diagram", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"diagram": diagram,
		"labels":  labels,
	})
}

func (h *DiagramHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	diagrams, err := h.diagramRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch diagrams", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"diagrams": diagrams})
}

func (h *DiagramHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid diagram ID", r))
		return
	}

	diagram, err := h.diagramRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Diagram not found", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if diagram.UserID != userID {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return
	}

	labels, _ := h.diagramRepo.GetLabels(r.Context(), id)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"diagram": diagram,
		"labels":  labels,
	})
}

func (h *DiagramHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid diagram ID", r))
		return
	}

	diagram, err := h.diagramRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Diagram not found", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if diagram.UserID != userID {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return
	}

	if err := h.diagramRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete diagram", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Diagram deleted"})
}
