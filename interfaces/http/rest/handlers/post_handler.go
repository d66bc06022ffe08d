package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"linkpage-backend/application/services"
	"linkpage-backend/domain"
	"linkpage-backend/pkg/common"
)

// PostHandler handles journal post HTTP requests
type PostHandler struct {
	provisioner *services.Provisioner
	posts       *services.PostService
	logger      *zap.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(provisioner *services.Provisioner, posts *services.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		provisioner: provisioner,
		posts:       posts,
		logger:      logger,
	}
}

// CreateTextPostRequest represents the request body for a new text post
type CreateTextPostRequest struct {
	Text string `json:"text" validate:"required"`
}

// ListCurrentPosts handles GET /posts/me
func (h *PostHandler) ListCurrentPosts(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.ensureCaller(w, r)
	if !ok {
		return
	}

	posts, err := h.posts.List(r.Context(), caller)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, paginatePosts(r, posts))
}

// ListPosts handles GET /posts/{subjectID}
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.ensureCaller(w, r); !ok {
		return
	}

	posts, err := h.posts.List(r.Context(), chi.URLParam(r, "subjectID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, paginatePosts(r, posts))
}

// paginatePosts windows the newest-first post list by the request's page
// parameters. The journal is the only unbounded listing on this surface.
func paginatePosts(r *http.Request, posts []domain.Post) *common.PaginatedResult {
	params := common.ExtractPaginationParams(r)
	start, end := params.Slice(len(posts))
	return common.NewPaginatedResult(posts[start:end], params, len(posts))
}

// CreateTextPost handles POST /posts
func (h *PostHandler) CreateTextPost(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.ensureCaller(w, r)
	if !ok {
		return
	}

	var req CreateTextPostRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	post, err := h.posts.CreateTextPost(r.Context(), caller, req.Text)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) ensureCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
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
