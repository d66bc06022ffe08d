package dynamodb

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"linkpage-backend/domain"
	apperrors "linkpage-backend/pkg/errors"
)

// PageRepository persists the singleton page row and its component rows.
// Both share the "PAGE#" sort-key prefix so one partition query returns the
// whole page.
type PageRepository struct {
	store     Store
	tableName string
	logger    *zap.Logger
}

// NewPageRepository creates a new DynamoDB-backed page repository
func NewPageRepository(store Store, tableName string, logger *zap.Logger) *PageRepository {
	return &PageRepository{
		store:     store,
		tableName: tableName,
		logger:    logger,
	}
}

// GetPageRows queries the "PAGE#" prefix and splits the singleton page row
// from its components, tracking the largest order value seen.
func (r *PageRepository) GetPageRows(ctx context.Context, subjectID string) (*domain.Page, []domain.Component, int, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(ownerPK(subjectID))).
		And(expression.Key("SK").BeginsWith(skPagePrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, nil, 0, apperrors.NewInternalError("failed to build page query", err)
	}

	result, err := r.store.Query(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		r.logger.Error("failed to query page rows", zap.String("subjectID", subjectID), zap.Error(err))
		return nil, nil, 0, storeError("query page", err)
	}

	var page *domain.Page
	components := make([]domain.Component, 0, len(result.Items))
	maxOrder := 0

	for _, item := range result.Items {
		sk, ok := item["SK"].(*types.AttributeValueMemberS)
		if !ok {
			return nil, nil, 0, apperrors.NewCorruptRecordError("page row", nil)
		}
		switch {
		case sk.Value == skPage:
			page, err = decodePage(item)
			if err != nil {
				return nil, nil, 0, err
			}
		case strings.HasPrefix(sk.Value, skComponentPrefix):
			component, err := decodeComponent(item)
			if err != nil {
				return nil, nil, 0, err
			}
			components = append(components, component)
			if component.Order() > maxOrder {
				maxOrder = component.Order()
			}
		}
	}

	if page == nil {
		return nil, nil, 0, apperrors.NewNotFoundError("page")
	}
	return page, components, maxOrder, nil
}

func (r *PageRepository) PutComponent(ctx context.Context, subjectID string, component domain.Component) error {
	item, err := newComponentItem(subjectID, component)
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal component", err)
	}

	_, err = r.store.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("failed to put component",
			zap.String("subjectID", subjectID),
			zap.String("componentID", component.ID()),
			zap.Error(err))
		return storeError("put component", err)
	}
	return nil
}

// DeleteComponent removes the row by key. The delete is unconditional, so
// removing a component that never existed succeeds.
func (r *PageRepository) DeleteComponent(ctx context.Context, subjectID, componentID string) error {
	_, err := r.store.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       itemKey(ownerPK(subjectID), componentSK(componentID)),
	})
	if err != nil {
		r.logger.Error("failed to delete component",
			zap.String("subjectID", subjectID),
			zap.String("componentID", componentID),
			zap.Error(err))
		return storeError("delete component", err)
	}
	return nil
}

// SetComponentOrder rewrites order and updatedAt. The existence condition
// keeps a move of a deleted component from materializing a junk row.
func (r *PageRepository) SetComponentOrder(ctx context.Context, subjectID, componentID string, newOrder int, now string) error {
	update := expression.Set(expression.Name("order"), expression.Value(newOrder)).
		Set(expression.Name("updatedAt"), expression.Value(now))
	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build order update", err)
	}

	_, err = r.store.UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       itemKey(ownerPK(subjectID), componentSK(componentID)),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewNotFoundError("component")
		}
		r.logger.Error("failed to set component order",
			zap.String("subjectID", subjectID),
			zap.String("componentID", componentID),
			zap.Error(err))
		return storeError("set component order", err)
	}
	return nil
}

// GetComponentDoc returns the stored document stripped of its key envelope,
// in the shape the schema validators expect.
func (r *PageRepository) GetComponentDoc(ctx context.Context, subjectID, componentID string) (map[string]interface{}, domain.ComponentType, error) {
	result, err := r.store.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       itemKey(ownerPK(subjectID), componentSK(componentID)),
	})
	if err != nil {
		r.logger.Error("failed to get component",
			zap.String("subjectID", subjectID),
			zap.String("componentID", componentID),
			zap.Error(err))
		return nil, "", storeError("get component", err)
	}
	if result.Item == nil {
		return nil, "", apperrors.NewNotFoundError("component")
	}

	doc := map[string]interface{}{}
	if err := attributevalue.UnmarshalMap(result.Item, &doc); err != nil {
		return nil, "", apperrors.NewCorruptRecordError("component", err)
	}
	delete(doc, "PK")
	delete(doc, "SK")
	delete(doc, "entityType")

	kind, ok := doc["componentType"].(string)
	if !ok || kind == "" {
		return nil, "", apperrors.NewCorruptRecordError("component", nil)
	}
	return doc, domain.ComponentType(kind), nil
}

// UpdateComponentFields writes only the validated fields plus updatedAt
func (r *PageRepository) UpdateComponentFields(ctx context.Context, subjectID, componentID string, updates map[string]interface{}, now string) error {
	update := expression.Set(expression.Name("updatedAt"), expression.Value(now))
	for field, value := range updates {
		update = update.Set(expression.Name(field), expression.Value(value))
	}
	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build field update", err)
	}

	_, err = r.store.UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       itemKey(ownerPK(subjectID), componentSK(componentID)),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewNotFoundError("component")
		}
		r.logger.Error("failed to update component fields",
			zap.String("subjectID", subjectID),
			zap.String("componentID", componentID),
			zap.Error(err))
		return storeError("update component", err)
	}
	return nil
}
