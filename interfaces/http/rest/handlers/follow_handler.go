package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"linkpage-backend/application/services"
)

// FollowHandler handles follow graph HTTP requests
type FollowHandler struct {
	provisioner *services.Provisioner
	follows     *services.FollowService
	logger      *zap.Logger
}

// NewFollowHandler creates a new follow handler
func NewFollowHandler(provisioner *services.Provisioner, follows *services.FollowService, logger *zap.Logger) *FollowHandler {
	return &FollowHandler{
		provisioner: provisioner,
		follows:     follows,
		logger:      logger,
	}
}

// FollowRequest represents the request body for following a user
type FollowRequest struct {
	TargetSubjectID string `json:"targetSubjectId" validate:"required"`
}

// ListFollowing handles GET /following
func (h *FollowHandler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.ensureCaller(w, r)
	if !ok {
		return
	}

	edges, err := h.follows.ListFollowing(r.Context(), caller)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, edges)
}

// Follow handles POST /following
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.ensureCaller(w, r)
	if !ok {
		return
	}

	var req FollowRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	target, err := h.follows.Follow(r.Context(), caller, req.TargetSubjectID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, target)
}

// Unfollow handles DELETE /following/{subjectID}
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.ensureCaller(w, r)
	if !ok {
		return
	}

	target, err := h.follows.Unfollow(r.Context(), caller, chi.URLParam(r, "subjectID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, target)
}

func (h *FollowHandler) ensureCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
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
