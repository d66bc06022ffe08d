package ports

import (
	"context"

	"linkpage-backend/domain"
)

// BootstrapState is the result of the provisioner's single batch read: the
// profile (nil when absent) plus existence flags for the other two
// bootstrap rows.
type BootstrapState struct {
	Profile   *domain.Profile
	PageFound bool
	BioFound  bool
}

// ProfileRepository defines the interface for profile persistence.
// This is a port in hexagonal architecture - the application doesn't know
// about the implementation.
type ProfileRepository interface {
	// Get retrieves a profile by subject id. Returns NOT_FOUND when the
	// row is absent, CORRUPT_RECORD when it exists but fails decode.
	Get(ctx context.Context, subjectID string) (*domain.Profile, error)

	// Search finds profiles whose username starts with the given prefix
	Search(ctx context.Context, usernamePrefix string) ([]*domain.Profile, error)

	// GetBootstrapState reads the three bootstrap rows in one round trip
	GetBootstrapState(ctx context.Context, subjectID string) (*BootstrapState, error)

	// CreateBootstrap writes profile, page, and bio component in one
	// atomic batch. The profile write is conditional on non-existence;
	// the page and component writes are idempotent overwrites. Returns
	// ALREADY_EXISTS when another caller won the bootstrap race.
	CreateBootstrap(ctx context.Context, profile *domain.Profile, page domain.Page, bio *domain.BioComponent) error
}

// PageRepository defines the interface for page and component persistence
type PageRepository interface {
	// GetPageRows reads every page-prefixed row for the owner and
	// separates the singleton page row from its components. maxOrder is
	// the largest order value seen across the rows (0 when none).
	// Returns NOT_FOUND when the page row is absent.
	GetPageRows(ctx context.Context, subjectID string) (*domain.Page, []domain.Component, int, error)

	// PutComponent writes a component row
	PutComponent(ctx context.Context, subjectID string, component domain.Component) error

	// DeleteComponent removes a component row by key. Deleting a
	// non-existent component is a no-op success.
	DeleteComponent(ctx context.Context, subjectID, componentID string) error

	// SetComponentOrder overwrites the component's order and updatedAt.
	// Returns NOT_FOUND when the component row is absent.
	SetComponentOrder(ctx context.Context, subjectID, componentID string, newOrder int, now string) error

	// GetComponentDoc returns the stored component document minus its key
	// envelope, together with its subtype tag, for merge validation
	GetComponentDoc(ctx context.Context, subjectID, componentID string) (map[string]interface{}, domain.ComponentType, error)

	// UpdateComponentFields applies a partial update of the given fields
	// plus updatedAt. Returns NOT_FOUND when the component row is absent.
	UpdateComponentFields(ctx context.Context, subjectID, componentID string, updates map[string]interface{}, now string) error
}

// PostRepository defines the interface for post persistence
type PostRepository interface {
	// List retrieves the owner's posts in reverse-chronological order
	List(ctx context.Context, subjectID string) ([]domain.Post, error)

	// Put writes a post row. Posts are append-only; nothing updates or
	// deletes them afterwards.
	Put(ctx context.Context, subjectID string, post domain.Post) error
}

// FollowRepository defines the interface for the follow graph
type FollowRepository interface {
	// IsFollowing reports whether a following edge exists from source to
	// target
	IsFollowing(ctx context.Context, sourceID, targetID string) (bool, error)

	// ListFollowing retrieves every following edge for the owner
	ListFollowing(ctx context.Context, sourceID string) ([]*domain.FollowingEdge, error)

	// CreateFollow inserts both edges and increments both counters in one
	// all-or-nothing transaction
	CreateFollow(ctx context.Context, sourceID, targetID string, following *domain.FollowingEdge, follower *domain.FollowerEdge) error

	// DeleteFollow deletes both edges and decrements both counters in one
	// all-or-nothing transaction
	DeleteFollow(ctx context.Context, sourceID, targetID string) error
}
