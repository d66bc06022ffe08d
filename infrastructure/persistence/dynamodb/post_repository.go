package dynamodb

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"linkpage-backend/domain"
	apperrors "linkpage-backend/pkg/errors"
)

// PostRepository persists post rows under the "POST#" sort-key prefix
type PostRepository struct {
	store     Store
	tableName string
	logger    *zap.Logger
}

// NewPostRepository creates a new DynamoDB-backed post repository
func NewPostRepository(store Store, tableName string, logger *zap.Logger) *PostRepository {
	return &PostRepository{
		store:     store,
		tableName: tableName,
		logger:    logger,
	}
}

// List returns the owner's posts newest first. The sort key carries the post
// id, not a timestamp, so ordering happens here on createdAt.
func (r *PostRepository) List(ctx context.Context, subjectID string) ([]domain.Post, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(ownerPK(subjectID))).
		And(expression.Key("SK").BeginsWith(skPostPrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build post query", err)
	}

	result, err := r.store.Query(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		r.logger.Error("failed to query posts", zap.String("subjectID", subjectID), zap.Error(err))
		return nil, storeError("query posts", err)
	}

	posts := make([]domain.Post, 0, len(result.Items))
	for _, item := range result.Items {
		post, err := decodePost(item)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAtRFC3339() > posts[j].CreatedAtRFC3339()
	})
	return posts, nil
}

func (r *PostRepository) Put(ctx context.Context, subjectID string, post domain.Post) error {
	item, err := newPostItem(subjectID, post)
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal post", err)
	}

	_, err = r.store.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("failed to put post",
			zap.String("subjectID", subjectID),
			zap.String("postID", post.ID()),
			zap.Error(err))
		return storeError("put post", err)
	}
	return nil
}
