package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"linkpage-backend/application/ports"
	"linkpage-backend/domain"
	domaincfg "linkpage-backend/domain/config"
	apperrors "linkpage-backend/pkg/errors"
)

// ProfileService serves profile reads and the username prefix search
type ProfileService struct {
	profiles ports.ProfileRepository
	limits   *domaincfg.DomainConfig
	logger   *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profiles ports.ProfileRepository, limits *domaincfg.DomainConfig, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		limits:   limits,
		logger:   logger,
	}
}

// Get returns the profile for a subject id
func (s *ProfileService) Get(ctx context.Context, subjectID string) (*domain.Profile, error) {
	if subjectID == "" {
		return nil, apperrors.NewValidationError("subject id is required")
	}
	return s.profiles.Get(ctx, subjectID)
}

// Search returns profiles whose username starts with the given prefix.
// Prefixes below the configured minimum length return an empty result
// instead of an error, and results are capped at the configured maximum.
func (s *ProfileService) Search(ctx context.Context, usernamePrefix string) ([]*domain.Profile, error) {
	prefix := strings.TrimSpace(usernamePrefix)
	if len(prefix) < s.limits.MinSearchPrefixLength || prefix == "" {
		return []*domain.Profile{}, nil
	}

	profiles, err := s.profiles.Search(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if len(profiles) > s.limits.MaxSearchResults {
		profiles = profiles[:s.limits.MaxSearchResults]
	}
	return profiles, nil
}
