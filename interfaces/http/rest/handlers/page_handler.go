package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"linkpage-backend/application/services"
	"linkpage-backend/domain"
)

// PageHandler handles page and component HTTP requests
type PageHandler struct {
	provisioner *services.Provisioner
	pages       *services.PageService
	logger      *zap.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(provisioner *services.Provisioner, pages *services.PageService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		provisioner: provisioner,
		pages:       pages,
		logger:      logger,
	}
}

// AddComponentRequest represents the request body for adding a component
type AddComponentRequest struct {
	Type string `json:"type" validate:"required"`
}

// MoveComponentRequest represents the request body for moving a component
type MoveComponentRequest struct {
	NewOrder int `json:"newOrder" validate:"gte=0"`
}

// EditComponentRequest represents the request body for a partial component
// edit. Updates holds only the fields being changed.
type EditComponentRequest struct {
	Updates map[string]interface{} `json:"updates" validate:"required"`
}

// GetCurrentPage handles GET /pages/me
func (h *PageHandler) GetCurrentPage(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.ensureCaller(w, r)
	if !ok {
		return
	}

	view, err := h.pages.GetPage(r.Context(), caller)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetPage handles GET /pages/{subjectID}
func (h *PageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.ensureCaller(w, r); !ok {
		return
	}

	view, err := h.pages.GetPage(r.Context(), chi.URLParam(r, "subjectID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// AddComponent handles POST /pages/me/components
func (h *PageHandler) AddComponent(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.ensureCaller(w, r)
	if !ok {
		return
	}

	var req AddComponentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	view, err := h.pages.AddComponent(r.Context(), caller, domain.ComponentType(req.Type))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// RemoveComponent handles DELETE /pages/me/components/{componentID}
func (h *PageHandler) RemoveComponent(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.ensureCaller(w, r)
	if !ok {
		return
	}

	view, err := h.pages.RemoveComponent(r.Context(), caller, chi.URLParam(r, "componentID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// MoveComponent handles PUT /pages/me/components/{componentID}/order
func (h *PageHandler) MoveComponent(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.ensureCaller(w, r)
	if !ok {
		return
	}

	var req MoveComponentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	view, err := h.pages.MoveComponent(r.Context(), caller, chi.URLParam(r, "componentID"), req.NewOrder)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// EditComponent handles PATCH /pages/me/components/{componentID}
func (h *PageHandler) EditComponent(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.ensureCaller(w, r)
	if !ok {
		return
	}

	var req EditComponentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	view, err := h.pages.EditComponent(r.Context(), caller, chi.URLParam(r, "componentID"), req.Updates)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// ensureCaller authenticates and provisions the caller, responding with the
// failure itself when either step fails
func (h *PageHandler) ensureCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, err := callerIdentity(r)
	if err != nil {
		respondError(w, h.logger, err)
		return "", false
	}
	profile, err := h.provisioner.EnsureProfile(r.Context(), identity)
	if err != nil {
		respondError(w, h.logger, err)
		return "", false
	}
	return profile.SubjectID, true
}
