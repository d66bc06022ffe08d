package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"linkpage-backend/application/services"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	provisioner *services.Provisioner
	profiles    *services.ProfileService
	logger      *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(provisioner *services.Provisioner, profiles *services.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		provisioner: provisioner,
		profiles:    profiles,
		logger:      logger,
	}
}

// GetCurrentProfile handles GET /profiles/me
func (h *ProfileHandler) GetCurrentProfile(w http.ResponseWriter, r *http.Request) {
	identity, err := callerIdentity(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	profile, err := h.provisioner.EnsureProfile(r.Context(), identity)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// GetProfile handles GET /profiles/{subjectID}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, err := callerIdentity(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if _, err := h.provisioner.EnsureProfile(r.Context(), identity); err != nil {
		respondError(w, h.logger, err)
		return
	}

	profile, err := h.profiles.Get(r.Context(), chi.URLParam(r, "subjectID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// SearchProfiles handles GET /profiles/search?q=<prefix>
func (h *ProfileHandler) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	identity, err := callerIdentity(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if _, err := h.provisioner.EnsureProfile(r.Context(), identity); err != nil {
		respondError(w, h.logger, err)
		return
	}

	profiles, err := h.profiles.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}
