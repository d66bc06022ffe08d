package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"linkpage-backend/application/services"
)

// MediaHandler handles image upload ticket requests
type MediaHandler struct {
	provisioner *services.Provisioner
	media       *services.MediaService
	logger      *zap.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(provisioner *services.Provisioner, media *services.MediaService, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		provisioner: provisioner,
		media:       media,
		logger:      logger,
	}
}

// UploadURLRequest represents the request body for an upload ticket
type UploadURLRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
}

// GetUploadURL handles POST /images/upload-url
func (h *MediaHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	identity, err := callerIdentity(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	caller, err := h.provisioner.EnsureProfile(r.Context(), identity)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req UploadURLRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	ticket, err := h.media.IssueUploadTicket(r.Context(), caller.SubjectID, req.FileName, req.ContentType)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}
