// Package services holds the application layer: use cases orchestrating the
// repositories without knowing how they are backed.
package services

import (
	"context"

	"go.uber.org/zap"

	"linkpage-backend/application/ports"
	"linkpage-backend/domain"
	apperrors "linkpage-backend/pkg/errors"
	"linkpage-backend/pkg/utils"
)

// Provisioner guarantees that every authenticated subject has its three
// bootstrap rows (profile, page, bio component) before any operation runs.
type Provisioner struct {
	profiles ports.ProfileRepository
	logger   *zap.Logger
}

// NewProvisioner creates a new profile provisioner
func NewProvisioner(profiles ports.ProfileRepository, logger *zap.Logger) *Provisioner {
	return &Provisioner{
		profiles: profiles,
		logger:   logger,
	}
}

// EnsureProfile returns the subject's profile, creating the bootstrap rows
// on first contact. Concurrent first calls race on a conditional profile
// put; the loser re-reads the winner's profile, so every caller observes
// exactly one profile.
func (p *Provisioner) EnsureProfile(ctx context.Context, identity domain.Identity) (*domain.Profile, error) {
	if identity.SubjectID == "" {
		return nil, apperrors.NewUnauthorizedError("missing subject identity")
	}

	state, err := p.profiles.GetBootstrapState(ctx, identity.SubjectID)
	if err != nil {
		return nil, err
	}
	if state.Profile != nil {
		if !state.PageFound || !state.BioFound {
			// Tolerated gap: rows written before the atomic bootstrap
			// existed may lack page or bio. Reads fall back to defaults.
			p.logger.Warn("profile missing bootstrap rows",
				zap.String("subjectID", identity.SubjectID),
				zap.Bool("pageFound", state.PageFound),
				zap.Bool("bioFound", state.BioFound))
		}
		return state.Profile, nil
	}

	now := utils.NowRFC3339()
	profile := domain.NewBootstrapProfile(identity, now)
	page := domain.DefaultPage(now)
	bio := domain.NewBootstrapBioComponent(profile, now)

	err = p.profiles.CreateBootstrap(ctx, profile, page, bio)
	if err == nil {
		return profile, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeAlreadyExists) {
		return nil, err
	}

	// Lost the bootstrap race; the winner's profile is now readable
	p.logger.Debug("bootstrap race lost, re-reading profile",
		zap.String("subjectID", identity.SubjectID))
	return p.profiles.Get(ctx, identity.SubjectID)
}
