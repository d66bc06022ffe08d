package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"linkpage-backend/domain"
	apperrors "linkpage-backend/pkg/errors"
)

// FollowRepository persists the follow graph: a FOLLOWING edge on the
// source's partition, a mirrored FOLLOWER edge on the target's, and the two
// denormalized counters on the profile rows. All four writes commit in one
// transaction so the mirror never drifts from the counters.
type FollowRepository struct {
	store     Store
	tableName string
	logger    *zap.Logger
}

// NewFollowRepository creates a new DynamoDB-backed follow repository
func NewFollowRepository(store Store, tableName string, logger *zap.Logger) *FollowRepository {
	return &FollowRepository{
		store:     store,
		tableName: tableName,
		logger:    logger,
	}
}

func (r *FollowRepository) IsFollowing(ctx context.Context, sourceID, targetID string) (bool, error) {
	result, err := r.store.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       itemKey(ownerPK(sourceID), followingSK(targetID)),
	})
	if err != nil {
		r.logger.Error("failed to get following edge",
			zap.String("sourceID", sourceID),
			zap.String("targetID", targetID),
			zap.Error(err))
		return false, storeError("get following edge", err)
	}
	return result.Item != nil, nil
}

func (r *FollowRepository) ListFollowing(ctx context.Context, sourceID string) ([]*domain.FollowingEdge, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(ownerPK(sourceID))).
		And(expression.Key("SK").BeginsWith(skFollowingPrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build following query", err)
	}

	result, err := r.store.Query(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		r.logger.Error("failed to query following edges", zap.String("sourceID", sourceID), zap.Error(err))
		return nil, storeError("query following edges", err)
	}

	edges := make([]*domain.FollowingEdge, 0, len(result.Items))
	for _, item := range result.Items {
		edge, err := decodeFollowingEdge(item)
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

// CreateFollow inserts both edges and bumps both counters atomically. The
// condition on the FOLLOWING put is the race guard: two concurrent follows
// of the same pair commit exactly once.
func (r *FollowRepository) CreateFollow(ctx context.Context, sourceID, targetID string, following *domain.FollowingEdge, follower *domain.FollowerEdge) error {
	followingAV, err := attributevalue.MarshalMap(newFollowingItem(sourceID, following))
	if err != nil {
		return apperrors.NewInternalError("failed to marshal following edge", err)
	}
	followerAV, err := attributevalue.MarshalMap(newFollowerItem(targetID, follower))
	if err != nil {
		return apperrors.NewInternalError("failed to marshal follower edge", err)
	}

	cond, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name("SK"))).
		Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build follow condition", err)
	}

	followingCountExpr, err := counterExpression("followingCount", 1)
	if err != nil {
		return err
	}
	followerCountExpr, err := counterExpression("followerCount", 1)
	if err != nil {
		return err
	}

	_, err = r.store.TransactWriteItems(ctx, &awsdynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     followingAV,
				ConditionExpression:      cond.Condition(),
				ExpressionAttributeNames: cond.Names(),
			}},
			{Put: &types.Put{
				TableName: aws.String(r.tableName),
				Item:      followerAV,
			}},
			{Update: &types.Update{
				TableName:                 aws.String(r.tableName),
				Key:                       itemKey(ownerPK(sourceID), skProfile),
				UpdateExpression:          followingCountExpr.Update(),
				ExpressionAttributeNames:  followingCountExpr.Names(),
				ExpressionAttributeValues: followingCountExpr.Values(),
			}},
			{Update: &types.Update{
				TableName:                 aws.String(r.tableName),
				Key:                       itemKey(ownerPK(targetID), skProfile),
				UpdateExpression:          followerCountExpr.Update(),
				ExpressionAttributeNames:  followerCountExpr.Names(),
				ExpressionAttributeValues: followerCountExpr.Values(),
			}},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewAlreadyFollowingError(targetID)
		}
		r.logger.Error("failed to create follow",
			zap.String("sourceID", sourceID),
			zap.String("targetID", targetID),
			zap.Error(err))
		return storeError("create follow", err)
	}
	return nil
}

// DeleteFollow removes both edges and decrements both counters atomically.
// The condition on the FOLLOWING delete turns a repeated unfollow into
// NOT_FOLLOWING instead of driving the counters negative.
func (r *FollowRepository) DeleteFollow(ctx context.Context, sourceID, targetID string) error {
	cond, err := expression.NewBuilder().
		WithCondition(expression.AttributeExists(expression.Name("SK"))).
		Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build unfollow condition", err)
	}

	followingCountExpr, err := counterExpression("followingCount", -1)
	if err != nil {
		return err
	}
	followerCountExpr, err := counterExpression("followerCount", -1)
	if err != nil {
		return err
	}

	_, err = r.store.TransactWriteItems(ctx, &awsdynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{
				TableName:                aws.String(r.tableName),
				Key:                      itemKey(ownerPK(sourceID), followingSK(targetID)),
				ConditionExpression:      cond.Condition(),
				ExpressionAttributeNames: cond.Names(),
			}},
			{Delete: &types.Delete{
				TableName: aws.String(r.tableName),
				Key:       itemKey(ownerPK(targetID), followerSK(sourceID)),
			}},
			{Update: &types.Update{
				TableName:                 aws.String(r.tableName),
				Key:                       itemKey(ownerPK(sourceID), skProfile),
				UpdateExpression:          followingCountExpr.Update(),
				ExpressionAttributeNames:  followingCountExpr.Names(),
				ExpressionAttributeValues: followingCountExpr.Values(),
			}},
			{Update: &types.Update{
				TableName:                 aws.String(r.tableName),
				Key:                       itemKey(ownerPK(targetID), skProfile),
				UpdateExpression:          followerCountExpr.Update(),
				ExpressionAttributeNames:  followerCountExpr.Names(),
				ExpressionAttributeValues: followerCountExpr.Values(),
			}},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewNotFollowingError(targetID)
		}
		r.logger.Error("failed to delete follow",
			zap.String("sourceID", sourceID),
			zap.String("targetID", targetID),
			zap.Error(err))
		return storeError("delete follow", err)
	}
	return nil
}

// counterExpression builds "SET <name> = if_not_exists(<name>, 0) + delta"
func counterExpression(name string, delta int) (expression.Expression, error) {
	update := expression.Set(
		expression.Name(name),
		expression.Plus(
			expression.IfNotExists(expression.Name(name), expression.Value(0)),
			expression.Value(delta),
		),
	)
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return expression.Expression{}, apperrors.NewInternalError("failed to build counter update", err)
	}
	return expr, nil
}
