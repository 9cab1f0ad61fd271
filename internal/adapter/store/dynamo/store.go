package dynamo

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"go.opentelemetry.io/otel/attribute"

	"todoapp/internal/core/domain"
	"todoapp/internal/core/port"
	"todoapp/pkg/tracing"
)

// Table key schema: user_id is the partition key, id the sort key.
const (
	partitionKey = "user_id"
	sortKey      = "id"
)

// API is the slice of the DynamoDB client the store depends on.
// Tests substitute a fake.
type API interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type Store struct {
	client API
	table  string
}

func NewStore(client API, table string) *Store {
	return &Store{
		client: client,
		table:  table,
	}
}

var _ port.TodoStore = &Store{}

// NewFromEnv builds a store on the default AWS credential/region chain.
// An endpoint override points the client at a local DynamoDB.
func NewFromEnv(ctx context.Context, table, endpoint string) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
		}
	})

	return NewStore(client, table), nil
}

// ListByUser queries the whole user partition, following LastEvaluatedKey
// until the query is exhausted so callers see every page, not just the
// first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "dynamo.Query", []attribute.KeyValue{
		attribute.String("db.table", s.table),
	})
	defer span.End()

	keyCond := expression.KeyEqual(expression.Key(partitionKey), expression.Value(userID))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()

	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	todos := []domain.Todo{}

	var cursor map[string]types.AttributeValue

	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 &s.table,
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         cursor,
		})

		if err != nil {
			err = fmt.Errorf("failed to query todos: %w", err)
			tracing.AddSpanError(span, err)

			return nil, err
		}

		var page []domain.Todo

		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal todos: %w", err)
		}

		todos = append(todos, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}

		cursor = out.LastEvaluatedKey
	}

	return todos, nil
}

// Put is an unconditional upsert. No condition expression is attached, so
// concurrent writers resolve by last write wins.
func (s *Store) Put(ctx context.Context, todo domain.Todo) error {
	ctx, span := tracing.CreateChildSpan(ctx, "dynamo.PutItem", []attribute.KeyValue{
		attribute.String("db.table", s.table),
	})
	defer span.End()

	item, err := attributevalue.MarshalMap(todo)

	if err != nil {
		return fmt.Errorf("failed to marshal todo: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.table,
		Item:      item,
	})

	if err != nil {
		err = fmt.Errorf("failed to put todo: %w", err)
		tracing.AddSpanError(span, err)

		return err
	}

	return nil
}

// Delete removes the item by composite key. DynamoDB treats deleting a
// missing key as success, which matches the store contract.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	ctx, span := tracing.CreateChildSpan(ctx, "dynamo.DeleteItem", []attribute.KeyValue{
		attribute.String("db.table", s.table),
	})
	defer span.End()

	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.table,
		Key: map[string]types.AttributeValue{
			partitionKey: &types.AttributeValueMemberS{Value: userID},
			sortKey:      &types.AttributeValueMemberS{Value: id},
		},
	})

	if err != nil {
		err = fmt.Errorf("failed to delete todo: %w", err)
		tracing.AddSpanError(span, err)

		return err
	}

	return nil
}
