package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"linkpage-backend/domain"
	domaincfg "linkpage-backend/domain/config"
	apperrors "linkpage-backend/pkg/errors"
)

func newPostFixture(limits *domaincfg.DomainConfig) (*fakePostRepo, *PostService) {
	profiles := newFakeProfileRepo()
	profile := domain.NewBootstrapProfile(domain.Identity{SubjectID: "sub-1", Username: "alice"}, "2026-01-01T00:00:00Z")
	profile.DisplayName = "Alice A."
	profiles.add(profile)

	posts := newFakePostRepo()
	return posts, NewPostService(posts, profiles, limits, zap.NewNop())
}

func TestPostServiceCreateTextPost(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the author's identity", func(t *testing.T) {
		posts, service := newPostFixture(domaincfg.DefaultDomainConfig())

		created, err := service.CreateTextPost(ctx, "sub-1", "first entry")
		require.NoError(t, err)

		text, ok := created.(*domain.TextPost)
		require.True(t, ok)
		assert.Equal(t, "first entry", text.Text)
		assert.Equal(t, "alice", text.Username)
		assert.Equal(t, "Alice A.", text.DisplayName)
		assert.NotEmpty(t, text.ID())

		stored, err := posts.List(ctx, "sub-1")
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, created.ID(), stored[0].ID())
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		_, service := newPostFixture(domaincfg.DefaultDomainConfig())

		_, err := service.CreateTextPost(ctx, "sub-1", "   \n\t")
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("text over the limit is rejected", func(t *testing.T) {
		limits := domaincfg.DefaultDomainConfig()
		limits.MaxPostLength = 10
		_, service := newPostFixture(limits)

		_, err := service.CreateTextPost(ctx, "sub-1", strings.Repeat("a", 11))
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("unknown author is not found", func(t *testing.T) {
		_, service := newPostFixture(domaincfg.DefaultDomainConfig())

		_, err := service.CreateTextPost(ctx, "sub-ghost", "hello")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestPostServiceList(t *testing.T) {
	ctx := context.Background()
	posts, service := newPostFixture(domaincfg.DefaultDomainConfig())
	author := domain.NewBootstrapProfile(domain.Identity{SubjectID: "sub-1", Username: "alice"}, "2026-01-01T00:00:00Z")
	require.NoError(t, posts.Put(ctx, "sub-1", domain.NewTextPost("p-old", author, "first", "2026-01-01T00:00:00Z")))
	require.NoError(t, posts.Put(ctx, "sub-1", domain.NewTextPost("p-new", author, "second", "2026-01-02T00:00:00Z")))

	listed, err := service.List(ctx, "sub-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "p-new", listed[0].ID())
	assert.Equal(t, "p-old", listed[1].ID())

	t.Run("empty subject id is rejected", func(t *testing.T) {
		_, err := service.List(ctx, "")
		assert.True(t, apperrors.IsValidation(err))
	})
}
