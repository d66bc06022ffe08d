package dynamodb

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeStore is an in-memory Store covering the expression shapes the
// repositories build: key equality, begins_with, attribute existence
// conditions, SET updates, and if_not_exists counter increments.
type fakeStore struct {
	items map[string]map[string]types.AttributeValue
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]map[string]types.AttributeValue)}
}

const fakeKeySep = "\x00"

func fakeKey(pk, sk string) string {
	return pk + fakeKeySep + sk
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if av, ok := item[name].(*types.AttributeValueMemberS); ok {
		return av.Value
	}
	return ""
}

func numberAttr(item map[string]types.AttributeValue, name string) (int, bool) {
	if av, ok := item[name].(*types.AttributeValueMemberN); ok {
		n, err := strconv.Atoi(av.Value)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	cp := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		cp[k] = v
	}
	return cp
}

func (s *fakeStore) GetItem(ctx context.Context, params *awsdynamodb.GetItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error) {
	item, ok := s.items[fakeKey(stringAttr(params.Key, "PK"), stringAttr(params.Key, "SK"))]
	if !ok {
		return &awsdynamodb.GetItemOutput{}, nil
	}
	return &awsdynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

func (s *fakeStore) PutItem(ctx context.Context, params *awsdynamodb.PutItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error) {
	key := fakeKey(stringAttr(params.Item, "PK"), stringAttr(params.Item, "SK"))
	if params.ConditionExpression != nil {
		_, exists := s.items[key]
		if !evalCondition(*params.ConditionExpression, exists) {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional check failed")}
		}
	}
	s.items[key] = copyItem(params.Item)
	return &awsdynamodb.PutItemOutput{}, nil
}

func (s *fakeStore) DeleteItem(ctx context.Context, params *awsdynamodb.DeleteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error) {
	key := fakeKey(stringAttr(params.Key, "PK"), stringAttr(params.Key, "SK"))
	if params.ConditionExpression != nil {
		_, exists := s.items[key]
		if !evalCondition(*params.ConditionExpression, exists) {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional check failed")}
		}
	}
	delete(s.items, key)
	return &awsdynamodb.DeleteItemOutput{}, nil
}

func (s *fakeStore) UpdateItem(ctx context.Context, params *awsdynamodb.UpdateItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.UpdateItemOutput, error) {
	key := fakeKey(stringAttr(params.Key, "PK"), stringAttr(params.Key, "SK"))
	item, exists := s.items[key]
	if params.ConditionExpression != nil && !evalCondition(*params.ConditionExpression, exists) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional check failed")}
	}
	if !exists {
		item = copyItem(params.Key)
		s.items[key] = item
	}
	applyUpdate(item, aws.ToString(params.UpdateExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	return &awsdynamodb.UpdateItemOutput{}, nil
}

func (s *fakeStore) Query(ctx context.Context, params *awsdynamodb.QueryInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error) {
	clauses := parseKeyCondition(aws.ToString(params.KeyConditionExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues)

	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var items []map[string]types.AttributeValue
	for _, k := range keys {
		item := s.items[k]
		if matchesClauses(item, clauses) {
			items = append(items, copyItem(item))
		}
	}
	return &awsdynamodb.QueryOutput{Items: items}, nil
}

func (s *fakeStore) BatchGetItem(ctx context.Context, params *awsdynamodb.BatchGetItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.BatchGetItemOutput, error) {
	out := &awsdynamodb.BatchGetItemOutput{Responses: map[string][]map[string]types.AttributeValue{}}
	for table, request := range params.RequestItems {
		for _, key := range request.Keys {
			if item, ok := s.items[fakeKey(stringAttr(key, "PK"), stringAttr(key, "SK"))]; ok {
				out.Responses[table] = append(out.Responses[table], copyItem(item))
			}
		}
	}
	return out, nil
}

func (s *fakeStore) TransactWriteItems(ctx context.Context, params *awsdynamodb.TransactWriteItemsInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.TransactWriteItemsOutput, error) {
	// First pass: evaluate every condition before touching anything.
	reasons := make([]types.CancellationReason, len(params.TransactItems))
	failed := false
	for i, it := range params.TransactItems {
		var cond *string
		var exists bool
		switch {
		case it.Put != nil:
			cond = it.Put.ConditionExpression
			_, exists = s.items[fakeKey(stringAttr(it.Put.Item, "PK"), stringAttr(it.Put.Item, "SK"))]
		case it.Delete != nil:
			cond = it.Delete.ConditionExpression
			_, exists = s.items[fakeKey(stringAttr(it.Delete.Key, "PK"), stringAttr(it.Delete.Key, "SK"))]
		case it.Update != nil:
			cond = it.Update.ConditionExpression
			_, exists = s.items[fakeKey(stringAttr(it.Update.Key, "PK"), stringAttr(it.Update.Key, "SK"))]
		}
		if cond != nil && !evalCondition(*cond, exists) {
			reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
			failed = true
		} else {
			reasons[i] = types.CancellationReason{Code: aws.String("None")}
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("transaction cancelled"),
			CancellationReasons: reasons,
		}
	}

	for _, it := range params.TransactItems {
		switch {
		case it.Put != nil:
			s.items[fakeKey(stringAttr(it.Put.Item, "PK"), stringAttr(it.Put.Item, "SK"))] = copyItem(it.Put.Item)
		case it.Delete != nil:
			delete(s.items, fakeKey(stringAttr(it.Delete.Key, "PK"), stringAttr(it.Delete.Key, "SK")))
		case it.Update != nil:
			key := fakeKey(stringAttr(it.Update.Key, "PK"), stringAttr(it.Update.Key, "SK"))
			item, ok := s.items[key]
			if !ok {
				item = copyItem(it.Update.Key)
				s.items[key] = item
			}
			applyUpdate(item, aws.ToString(it.Update.UpdateExpression), it.Update.ExpressionAttributeNames, it.Update.ExpressionAttributeValues)
		}
	}
	return &awsdynamodb.TransactWriteItemsOutput{}, nil
}

// Expression evaluation helpers. The expression builder emits placeholders
// (#0, :0); these resolve them against the provided name and value maps.

type keyClause struct {
	attribute  string
	value      types.AttributeValue
	beginsWith bool
}

var (
	equalityRe   = regexp.MustCompile(`(#\w+)\s*=\s*(:\w+)`)
	beginsWithRe = regexp.MustCompile(`begins_with\s*\((#\w+),\s*(:\w+)\)`)
	counterRe    = regexp.MustCompile(`(#\w+)\s*=\s*if_not_exists\s*\((#\w+),\s*(:\w+)\)\s*\+\s*(:\w+)`)
)

func parseKeyCondition(expr string, names map[string]string, values map[string]types.AttributeValue) []keyClause {
	var clauses []keyClause
	for _, part := range strings.Split(expr, " AND ") {
		if m := beginsWithRe.FindStringSubmatch(part); m != nil {
			clauses = append(clauses, keyClause{attribute: names[m[1]], value: values[m[2]], beginsWith: true})
			continue
		}
		if m := equalityRe.FindStringSubmatch(part); m != nil {
			clauses = append(clauses, keyClause{attribute: names[m[1]], value: values[m[2]]})
		}
	}
	return clauses
}

func matchesClauses(item map[string]types.AttributeValue, clauses []keyClause) bool {
	for _, clause := range clauses {
		want, ok := clause.value.(*types.AttributeValueMemberS)
		if !ok {
			return false
		}
		got := stringAttr(item, clause.attribute)
		if clause.beginsWith {
			if !strings.HasPrefix(got, want.Value) {
				return false
			}
		} else if got != want.Value {
			return false
		}
	}
	return true
}

func evalCondition(cond string, exists bool) bool {
	if strings.Contains(cond, "attribute_not_exists") {
		return !exists
	}
	if strings.Contains(cond, "attribute_exists") {
		return exists
	}
	return true
}

func applyUpdate(item map[string]types.AttributeValue, expr string, names map[string]string, values map[string]types.AttributeValue) {
	expr = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(expr), "SET"))

	if m := counterRe.FindStringSubmatch(expr); m != nil {
		attr := names[m[1]]
		current, ok := numberAttr(item, attr)
		if !ok {
			if init, okInit := values[m[3]].(*types.AttributeValueMemberN); okInit {
				current, _ = strconv.Atoi(init.Value)
			}
		}
		delta := 0
		if d, okDelta := values[m[4]].(*types.AttributeValueMemberN); okDelta {
			delta, _ = strconv.Atoi(d.Value)
		}
		item[attr] = &types.AttributeValueMemberN{Value: strconv.Itoa(current + delta)}
		return
	}

	for _, part := range strings.Split(expr, ", ") {
		if m := equalityRe.FindStringSubmatch(part); m != nil {
			item[names[m[1]]] = values[m[2]]
		}
	}
}
