package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"linkpage-backend/application/ports"
	"linkpage-backend/domain"
	domaincfg "linkpage-backend/domain/config"
	apperrors "linkpage-backend/pkg/errors"
	"linkpage-backend/pkg/utils"
)

// orderGap is the spacing between appended components, leaving room for
// client-side reordering between neighbors without renumbering.
const orderGap = 10

// PageService assembles page views and runs the component mutations. Every
// mutation returns the refreshed view so clients always render from the
// same read path.
type PageService struct {
	pages    ports.PageRepository
	profiles ports.ProfileRepository
	limits   *domaincfg.DomainConfig
	logger   *zap.Logger
}

// NewPageService creates a new page service
func NewPageService(pages ports.PageRepository, profiles ports.ProfileRepository, limits *domaincfg.DomainConfig, logger *zap.Logger) *PageService {
	return &PageService{
		pages:    pages,
		profiles: profiles,
		limits:   limits,
		logger:   logger,
	}
}

// GetPage returns the owner's page with components sorted by order
// ascending and bio components overlaid with the live profile.
func (s *PageService) GetPage(ctx context.Context, ownerID string) (*domain.PageView, error) {
	profile, err := s.profiles.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	page, components, _, err := s.pages.GetPageRows(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(components, func(i, j int) bool {
		return components[i].Order() < components[j].Order()
	})
	for _, component := range components {
		if bio, ok := component.(*domain.BioComponent); ok {
			bio.OverlayProfile(profile)
		}
	}

	return &domain.PageView{
		Page:           *page,
		Components:     components,
		ComponentCount: len(components),
		TotalSections:  page.SectionCount,
	}, nil
}

// AddComponent appends a component of the given subtype after the current
// last one. Unregistered subtypes are rejected rather than coerced.
func (s *PageService) AddComponent(ctx context.Context, ownerID string, componentType domain.ComponentType) (*domain.PageView, error) {
	if !domain.SchemaRegistered(componentType) {
		return nil, apperrors.NewUnknownTypeError(string(componentType))
	}

	_, components, maxOrder, err := s.pages.GetPageRows(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(components) >= s.limits.MaxComponentsPerPage {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("page already has the maximum of %d components", s.limits.MaxComponentsPerPage))
	}

	now := utils.NowRFC3339()
	id := uuid.New().String()
	order := maxOrder + orderGap

	var component domain.Component
	switch componentType {
	case domain.ComponentTypeBio:
		profile, err := s.profiles.Get(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		component = domain.NewBioComponent(id, order, profile, now)
	case domain.ComponentTypeText:
		component = domain.NewTextComponent(id, order, now)
	default:
		return nil, apperrors.NewUnknownTypeError(string(componentType))
	}

	if err := s.pages.PutComponent(ctx, ownerID, component); err != nil {
		return nil, err
	}

	s.logger.Info("component added",
		zap.String("subjectID", ownerID),
		zap.String("componentID", id),
		zap.String("componentType", string(componentType)),
		zap.Int("order", order))
	return s.GetPage(ctx, ownerID)
}

// RemoveComponent deletes the component. Removing one that does not exist
// succeeds and returns the unchanged view.
func (s *PageService) RemoveComponent(ctx context.Context, ownerID, componentID string) (*domain.PageView, error) {
	if componentID == "" {
		return nil, apperrors.NewValidationError("component id is required")
	}
	if err := s.pages.DeleteComponent(ctx, ownerID, componentID); err != nil {
		return nil, err
	}
	return s.GetPage(ctx, ownerID)
}

// MoveComponent assigns a new order value to an existing component
func (s *PageService) MoveComponent(ctx context.Context, ownerID, componentID string, newOrder int) (*domain.PageView, error) {
	if componentID == "" {
		return nil, apperrors.NewValidationError("component id is required")
	}
	if newOrder < 0 {
		return nil, apperrors.NewValidationError("order must not be negative")
	}

	if err := s.pages.SetComponentOrder(ctx, ownerID, componentID, newOrder, utils.NowRFC3339()); err != nil {
		return nil, err
	}
	return s.GetPage(ctx, ownerID)
}

// EditComponent applies a partial update after validating the merged
// document against the subtype's schema, then writes only the updated
// fields. A failed validation leaves the stored document untouched.
func (s *PageService) EditComponent(ctx context.Context, ownerID, componentID string, updates map[string]interface{}) (*domain.PageView, error) {
	if componentID == "" {
		return nil, apperrors.NewValidationError("component id is required")
	}
	if len(updates) == 0 {
		return nil, apperrors.NewValidationError("no fields to update")
	}

	doc, componentType, err := s.pages.GetComponentDoc(ctx, ownerID, componentID)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]interface{}, len(doc)+len(updates))
	for k, v := range doc {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}

	if err := domain.ValidateComponentUpdate(componentType, updates, merged); err != nil {
		return nil, err
	}

	if err := s.pages.UpdateComponentFields(ctx, ownerID, componentID, updates, utils.NowRFC3339()); err != nil {
		return nil, err
	}

	s.logger.Info("component edited",
		zap.String("subjectID", ownerID),
		zap.String("componentID", componentID),
		zap.Int("fields", len(updates)))
	return s.GetPage(ctx, ownerID)
}
