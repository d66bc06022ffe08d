package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"linkpage-backend/domain"
)

func TestPostRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	repo := NewPostRepository(store, testTable, zap.NewNop())
	author := testProfile("sub-1", "alice")

	// Ids are random in production; createdAt decides the order.
	require.NoError(t, repo.Put(ctx, "sub-1", domain.NewTextPost("p-old", author, "first", "2026-01-01T00:00:00Z")))
	require.NoError(t, repo.Put(ctx, "sub-1", domain.NewTextPost("p-new", author, "third", "2026-01-03T00:00:00Z")))
	require.NoError(t, repo.Put(ctx, "sub-1", domain.NewTextPost("p-mid", author, "second", "2026-01-02T00:00:00Z")))

	posts, err := repo.List(ctx, "sub-1")
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "p-new", posts[0].ID())
	assert.Equal(t, "p-mid", posts[1].ID())
	assert.Equal(t, "p-old", posts[2].ID())

	first, ok := posts[0].(*domain.TextPost)
	require.True(t, ok)
	assert.Equal(t, "third", first.Text)
	assert.Equal(t, "alice", first.Username)
}

func TestPostRepositoryListScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(newFakeStore(), testTable, zap.NewNop())

	require.NoError(t, repo.Put(ctx, "sub-1", domain.NewTextPost("p-1", testProfile("sub-1", "alice"), "mine", "2026-01-01T00:00:00Z")))
	require.NoError(t, repo.Put(ctx, "sub-2", domain.NewTextPost("p-2", testProfile("sub-2", "bob"), "theirs", "2026-01-01T00:00:00Z")))

	posts, err := repo.List(ctx, "sub-1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p-1", posts[0].ID())
}

func TestPostRepositoryUnknownSubtype(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	repo := NewPostRepository(store, testTable, zap.NewNop())

	store.items[fakeKey(ownerPK("sub-1"), postSK("p-future"))] = map[string]types.AttributeValue{
		"PK":          &types.AttributeValueMemberS{Value: ownerPK("sub-1")},
		"SK":          &types.AttributeValueMemberS{Value: postSK("p-future")},
		"entityType":  &types.AttributeValueMemberS{Value: entityTypePost},
		"postType":    &types.AttributeValueMemberS{Value: "VIDEO"},
		"username":    &types.AttributeValueMemberS{Value: "alice"},
		"displayName": &types.AttributeValueMemberS{Value: "alice"},
		"createdAt":   &types.AttributeValueMemberS{Value: "2026-01-01T00:00:00Z"},
		"updatedAt":   &types.AttributeValueMemberS{Value: "2026-01-01T00:00:00Z"},
	}

	posts, err := repo.List(ctx, "sub-1")
	require.NoError(t, err)
	require.Len(t, posts, 1)

	base, ok := posts[0].(*domain.BasePost)
	require.True(t, ok)
	assert.Equal(t, "p-future", base.ID())
	assert.Equal(t, domain.PostType("VIDEO"), base.PostType)
}
