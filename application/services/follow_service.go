package services

import (
	"context"

	"go.uber.org/zap"

	"linkpage-backend/application/ports"
	"linkpage-backend/domain"
	apperrors "linkpage-backend/pkg/errors"
	"linkpage-backend/pkg/utils"
)

// FollowService runs the follow graph use cases on top of the transactional
// repository. The two denormalized counters on the profile rows are updated
// only through these paths.
type FollowService struct {
	follows  ports.FollowRepository
	profiles ports.ProfileRepository
	logger   *zap.Logger
}

// NewFollowService creates a new follow service
func NewFollowService(follows ports.FollowRepository, profiles ports.ProfileRepository, logger *zap.Logger) *FollowService {
	return &FollowService{
		follows:  follows,
		profiles: profiles,
		logger:   logger,
	}
}

// ListFollowing returns every account the subject follows
func (s *FollowService) ListFollowing(ctx context.Context, sourceID string) ([]*domain.FollowingEdge, error) {
	if sourceID == "" {
		return nil, apperrors.NewValidationError("subject id is required")
	}
	return s.follows.ListFollowing(ctx, sourceID)
}

// Follow creates the edge pair and bumps both counters. The returned target
// profile carries the incremented follower count without a re-read; the
// transaction has already committed it.
func (s *FollowService) Follow(ctx context.Context, sourceID, targetID string) (*domain.Profile, error) {
	if targetID == "" {
		return nil, apperrors.NewValidationError("target subject id is required")
	}
	if sourceID == targetID {
		return nil, apperrors.NewValidationError("cannot follow yourself")
	}

	exists, err := s.follows.IsFollowing(ctx, sourceID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewAlreadyFollowingError(targetID)
	}

	target, err := s.profiles.Get(ctx, targetID)
	if err != nil {
		return nil, err
	}
	source, err := s.profiles.Get(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	now := utils.NowRFC3339()
	following := &domain.FollowingEdge{
		FollowingSub:         target.SubjectID,
		FollowingUsername:    target.Username,
		FollowingDisplayName: target.DisplayName,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	follower := &domain.FollowerEdge{
		FollowerSub:         source.SubjectID,
		FollowerUsername:    source.Username,
		FollowerDisplayName: source.DisplayName,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.follows.CreateFollow(ctx, sourceID, targetID, following, follower); err != nil {
		return nil, err
	}

	s.logger.Info("follow created",
		zap.String("sourceID", sourceID),
		zap.String("targetID", targetID))

	target.FollowerCount++
	return target, nil
}

// Unfollow removes the edge pair and decrements both counters, then
// returns the freshly re-read target profile.
func (s *FollowService) Unfollow(ctx context.Context, sourceID, targetID string) (*domain.Profile, error) {
	if targetID == "" {
		return nil, apperrors.NewValidationError("target subject id is required")
	}
	if sourceID == targetID {
		return nil, apperrors.NewValidationError("cannot unfollow yourself")
	}

	if err := s.follows.DeleteFollow(ctx, sourceID, targetID); err != nil {
		return nil, err
	}

	s.logger.Info("follow removed",
		zap.String("sourceID", sourceID),
		zap.String("targetID", targetID))

	return s.profiles.Get(ctx, targetID)
}
