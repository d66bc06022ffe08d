package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"linkpage-backend/application/ports"
	"linkpage-backend/domain"
	apperrors "linkpage-backend/pkg/errors"
)

// ProfileRepository persists profiles in the single table and serves the
// username search through GSI1.
type ProfileRepository struct {
	store     Store
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewProfileRepository creates a new DynamoDB-backed profile repository
func NewProfileRepository(store Store, tableName, indexName string, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		store:     store,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

func (r *ProfileRepository) Get(ctx context.Context, subjectID string) (*domain.Profile, error) {
	result, err := r.store.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       itemKey(ownerPK(subjectID), skProfile),
	})
	if err != nil {
		r.logger.Error("failed to get profile", zap.String("subjectID", subjectID), zap.Error(err))
		return nil, storeError("get profile", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("profile")
	}

	return decodeProfile(result.Item)
}

// Search queries GSI1 for usernames beginning with the given prefix. An
// empty prefix matches nothing rather than scanning every profile.
func (r *ProfileRepository) Search(ctx context.Context, usernamePrefix string) ([]*domain.Profile, error) {
	if usernamePrefix == "" {
		return []*domain.Profile{}, nil
	}

	keyEx := expression.Key("GSI1PK").Equal(expression.Value(gsi1ProfilePK)).
		And(expression.Key("GSI1SK").BeginsWith(usernamePrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search expression", err)
	}

	result, err := r.store.Query(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		r.logger.Error("failed to search profiles", zap.String("prefix", usernamePrefix), zap.Error(err))
		return nil, storeError("search profiles", err)
	}

	profiles := make([]*domain.Profile, 0, len(result.Items))
	for _, item := range result.Items {
		profile, err := decodeProfile(item)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// GetBootstrapState batch-reads the three provisioning rows in one round
// trip. The bio component's id is derived from the subject id, which is what
// makes the fixed-key batch read possible.
func (r *ProfileRepository) GetBootstrapState(ctx context.Context, subjectID string) (*ports.BootstrapState, error) {
	pk := ownerPK(subjectID)
	bioSK := componentSK(bootstrapBioComponentID(subjectID))

	result, err := r.store.BatchGetItem(ctx, &awsdynamodb.BatchGetItemInput{
		RequestItems: map[string]types.KeysAndAttributes{
			r.tableName: {
				Keys: []map[string]types.AttributeValue{
					itemKey(pk, skProfile),
					itemKey(pk, skPage),
					itemKey(pk, bioSK),
				},
			},
		},
	})
	if err != nil {
		r.logger.Error("failed to read bootstrap state", zap.String("subjectID", subjectID), zap.Error(err))
		return nil, storeError("get bootstrap state", err)
	}

	state := &ports.BootstrapState{}
	for _, item := range result.Responses[r.tableName] {
		sk, ok := item["SK"].(*types.AttributeValueMemberS)
		if !ok {
			return nil, apperrors.NewCorruptRecordError("bootstrap row", nil)
		}
		switch sk.Value {
		case skProfile:
			profile, err := decodeProfile(item)
			if err != nil {
				return nil, err
			}
			state.Profile = profile
		case skPage:
			state.PageFound = true
		case bioSK:
			state.BioFound = true
		}
	}
	return state, nil
}

// CreateBootstrap writes the three rows atomically. Only the profile put is
// conditional; the page and bio writes are overwrites of rows nothing else
// creates, so a retry after a partial failure converges.
func (r *ProfileRepository) CreateBootstrap(ctx context.Context, profile *domain.Profile, page domain.Page, bio *domain.BioComponent) error {
	profileAV, err := attributevalue.MarshalMap(newProfileItem(profile))
	if err != nil {
		return apperrors.NewInternalError("failed to marshal profile", err)
	}
	pageAV, err := attributevalue.MarshalMap(newPageItem(profile.SubjectID, page))
	if err != nil {
		return apperrors.NewInternalError("failed to marshal page", err)
	}
	bioItem, err := newComponentItem(profile.SubjectID, bio)
	if err != nil {
		return err
	}
	bioAV, err := attributevalue.MarshalMap(bioItem)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal bio component", err)
	}

	cond, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build bootstrap condition", err)
	}

	_, err = r.store.TransactWriteItems(ctx, &awsdynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     profileAV,
				ConditionExpression:      cond.Condition(),
				ExpressionAttributeNames: cond.Names(),
			}},
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: pageAV}},
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: bioAV}},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewAlreadyExistsError("profile already exists")
		}
		r.logger.Error("failed to bootstrap profile", zap.String("subjectID", profile.SubjectID), zap.Error(err))
		return storeError("create bootstrap", err)
	}

	r.logger.Info("profile bootstrapped",
		zap.String("subjectID", profile.SubjectID),
		zap.String("username", profile.Username))
	return nil
}
