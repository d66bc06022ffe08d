package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"linkpage-backend/application/ports"
	"linkpage-backend/domain"
	domaincfg "linkpage-backend/domain/config"
	apperrors "linkpage-backend/pkg/errors"
	"linkpage-backend/pkg/utils"
)

// PostService serves the journal: reverse-chronological reads and
// append-only text post creation.
type PostService struct {
	posts    ports.PostRepository
	profiles ports.ProfileRepository
	limits   *domaincfg.DomainConfig
	logger   *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(posts ports.PostRepository, profiles ports.ProfileRepository, limits *domaincfg.DomainConfig, logger *zap.Logger) *PostService {
	return &PostService{
		posts:    posts,
		profiles: profiles,
		limits:   limits,
		logger:   logger,
	}
}

// List returns the owner's posts newest first
func (s *PostService) List(ctx context.Context, ownerID string) ([]domain.Post, error) {
	if ownerID == "" {
		return nil, apperrors.NewValidationError("subject id is required")
	}
	return s.posts.List(ctx, ownerID)
}

// CreateTextPost appends a text post, snapshotting the author's current
// username and display name. The author's profile must exist; posts are
// immutable once written.
func (s *PostService) CreateTextPost(ctx context.Context, authorID, text string) (domain.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("post text is required")
	}
	if len(text) > s.limits.MaxPostLength {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("post text exceeds %d characters", s.limits.MaxPostLength))
	}

	author, err := s.profiles.Get(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := domain.NewTextPost(uuid.New().String(), author, text, utils.NowRFC3339())
	if err := s.posts.Put(ctx, authorID, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		zap.String("subjectID", authorID),
		zap.String("postID", post.ID()))
	return post, nil
}
