package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	appErrors "forum-backend/pkg/errors"
)

// adjustCounter atomically adds delta to a numeric field and bumps
// updatedAt in the same call. With floored set, a decrement below zero
// fails its precondition and is treated as a no-op: concurrent
// double-deletes then park the counter at zero instead of driving it
// negative. Vote counters pass floored=false and may go negative.
func adjustCounter(ctx context.Context, client *dynamodb.Client, table string, key map[string]types.AttributeValue, field string, delta int, floored bool) error {
	update := expression.
		Add(expression.Name(field), expression.Value(delta)).
		Set(expression.Name("updatedAt"), expression.Value(time.Now().UnixMilli()))

	builder := expression.NewBuilder().WithUpdate(update)
	if floored && delta < 0 {
		builder = builder.WithCondition(
			expression.Name(field).GreaterThanEqual(expression.Value(-delta)))
	}

	expr, err := builder.Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build counter update")
	}

	_, err = client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &table,
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			// Counter already at its floor.
			return nil
		}
		return appErrors.NewDatabaseError("adjust counter", err)
	}
	return nil
}
