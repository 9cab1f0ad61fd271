package dynamo_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/internal/adapter/store/dynamo"
	"todoapp/internal/core/domain"
)

var ctx = context.Background()

// fakeDynamo substitutes the AWS client behind the store's API interface.
type fakeDynamo struct {
	queryFn  func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	putFn    func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	deleteFn func(*dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)
}

func (f *fakeDynamo) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return f.queryFn(params)
}

func (f *fakeDynamo) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return f.putFn(params)
}

func (f *fakeDynamo) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return f.deleteFn(params)
}

func todoItem(id, title string, created int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":        &types.AttributeValueMemberS{Value: id},
		"user_id":   &types.AttributeValueMemberS{Value: "no-one"},
		"title":     &types.AttributeValueMemberS{Value: title},
		"completed": &types.AttributeValueMemberBOOL{Value: false},
		"created":   &types.AttributeValueMemberN{Value: strconv.FormatInt(created, 10)},
	}
}

func TestListByUserFollowsAllPages(t *testing.T) {
	var calls []*dynamodb.QueryInput

	pageCursor := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: "a"},
	}

	fake := &fakeDynamo{
		queryFn: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			calls = append(calls, in)

			if len(calls) == 1 {
				return &dynamodb.QueryOutput{
					Items:            []map[string]types.AttributeValue{todoItem("a", "first", 100)},
					LastEvaluatedKey: pageCursor,
				}, nil
			}

			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{todoItem("b", "second", 200)},
			}, nil
		},
	}

	store := dynamo.NewStore(fake, "todos-table")

	todos, err := store.ListByUser(ctx, "no-one")

	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "a", todos[0].ID)
	assert.Equal(t, "b", todos[1].ID)

	// Two round trips: the second resumes from the returned cursor.
	require.Len(t, calls, 2)
	assert.Nil(t, calls[0].ExclusiveStartKey)
	assert.Equal(t, pageCursor, calls[1].ExclusiveStartKey)
	assert.Equal(t, "todos-table", *calls[1].TableName)
}

func TestListByUserConditionsOnPartition(t *testing.T) {
	fake := &fakeDynamo{
		queryFn: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			found := false

			for _, v := range in.ExpressionAttributeValues {
				if s, ok := v.(*types.AttributeValueMemberS); ok && s.Value == "no-one" {
					found = true
				}
			}

			assert.True(t, found, "query must condition on the user partition")
			assert.NotNil(t, in.KeyConditionExpression)

			return &dynamodb.QueryOutput{}, nil
		},
	}

	store := dynamo.NewStore(fake, "todos-table")

	todos, err := store.ListByUser(ctx, "no-one")

	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestPutMarshalsCanonicalAttributes(t *testing.T) {
	var got *dynamodb.PutItemInput

	fake := &fakeDynamo{
		putFn: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			got = in
			return &dynamodb.PutItemOutput{}, nil
		},
	}

	store := dynamo.NewStore(fake, "todos-table")

	err := store.Put(ctx, domain.Todo{
		ID:        "abc",
		UserID:    "no-one",
		Title:     "buy milk",
		Completed: true,
		Created:   1700000000000,
	})

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "todos-table", *got.TableName)

	assert.Equal(t, &types.AttributeValueMemberS{Value: "abc"}, got.Item["id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "no-one"}, got.Item["user_id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "buy milk"}, got.Item["title"])
	assert.Equal(t, &types.AttributeValueMemberBOOL{Value: true}, got.Item["completed"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1700000000000"}, got.Item["created"])
}

func TestDeleteUsesCompositeKey(t *testing.T) {
	var got *dynamodb.DeleteItemInput

	fake := &fakeDynamo{
		deleteFn: func(in *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			got = in
			return &dynamodb.DeleteItemOutput{}, nil
		},
	}

	store := dynamo.NewStore(fake, "todos-table")

	require.NoError(t, store.Delete(ctx, "no-one", "abc"))
	require.NotNil(t, got)

	assert.Equal(t, &types.AttributeValueMemberS{Value: "no-one"}, got.Key["user_id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "abc"}, got.Key["id"])
}

func TestErrorsAreWrapped(t *testing.T) {
	boom := errors.New("throttled")

	fake := &fakeDynamo{
		queryFn: func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return nil, boom
		},
		putFn: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, boom
		},
		deleteFn: func(*dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			return nil, boom
		},
	}

	store := dynamo.NewStore(fake, "todos-table")

	_, err := store.ListByUser(ctx, "no-one")
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, store.Put(ctx, domain.Todo{ID: "1"}), boom)
	assert.ErrorIs(t, store.Delete(ctx, "no-one", "1"), boom)
}
