package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"forum-backend/application/ports"
	"forum-backend/domain/forum"
	appErrors "forum-backend/pkg/errors"
)

// channelRepository persists channels in a table keyed by channelId.
type channelRepository struct {
	client *dynamodb.Client
	table  string
	logger *zap.Logger
}

// NewChannelRepository creates a DynamoDB-backed channel repository.
func NewChannelRepository(client *dynamodb.Client, table string, logger *zap.Logger) ports.ChannelRepository {
	return &channelRepository{client: client, table: table, logger: logger}
}

func channelKey(channelID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"channelId": &types.AttributeValueMemberS{Value: channelID},
	}
}

// Create stores the channel, refusing to overwrite an existing key so
// duplicate names surface as a conflict instead of clobbering state.
func (r *channelRepository) Create(ctx context.Context, channel *forum.Channel) error {
	item, err := attributevalue.MarshalMap(channel)
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal channel")
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name("channelId"))).
		Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build channel create condition")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 &r.table,
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewConflictError("channel already exists")
		}
		return appErrors.NewDatabaseError("create channel", err)
	}
	return nil
}

func (r *channelRepository) Get(ctx context.Context, channelID string) (*forum.Channel, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key:       channelKey(channelID),
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("get channel", err)
	}
	if len(out.Item) == 0 {
		return nil, appErrors.NewNotFoundError("channel")
	}

	var channel forum.Channel
	if err := attributevalue.UnmarshalMap(out.Item, &channel); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal channel")
	}
	return &channel, nil
}

func (r *channelRepository) List(ctx context.Context, limit int, cursor string) (*ports.ChannelPage, error) {
	startKey, err := decodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:         &r.table,
		Limit:             aws.Int32(int32(limit)),
		ExclusiveStartKey: startKey,
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("list channels", err)
	}

	var channels []forum.Channel
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &channels); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal channels")
	}

	next, err := encodeCursor(out.LastEvaluatedKey)
	if err != nil {
		return nil, err
	}
	return &ports.ChannelPage{Items: channels, NextCursor: next}, nil
}

// AddParticipant appends to the participant list in place.
func (r *channelRepository) AddParticipant(ctx context.Context, channelID string, p forum.Participant) error {
	update := expression.
		Set(expression.Name("participants"),
			expression.ListAppend(expression.Name("participants"), expression.Value([]forum.Participant{p}))).
		Set(expression.Name("updatedAt"), expression.Value(time.Now().UnixMilli()))

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build participant update")
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &r.table,
		Key:                       channelKey(channelID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return appErrors.NewDatabaseError("add participant", err)
	}
	return nil
}

// Delete removes the channel only while its question counter reads
// zero. The emptiness precondition and the delete are a single atomic
// operation, so a concurrent question create cannot race past it.
func (r *channelRepository) Delete(ctx context.Context, channelID string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.Name("totalQuestions").Equal(expression.Value(0))).
		Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build channel delete condition")
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 &r.table,
		Key:                       channelKey(channelID),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewConflictError("channel is not empty")
		}
		return appErrors.NewDatabaseError("delete channel", err)
	}
	return nil
}

func (r *channelRepository) AdjustTotalQuestions(ctx context.Context, channelID string, delta int) error {
	return adjustCounter(ctx, r.client, r.table, channelKey(channelID), "totalQuestions", delta, true)
}

// ResetTotalQuestions zeroes the counter after a cascade completes,
// regardless of its current value.
func (r *channelRepository) ResetTotalQuestions(ctx context.Context, channelID string) error {
	update := expression.
		Set(expression.Name("totalQuestions"), expression.Value(0)).
		Set(expression.Name("updatedAt"), expression.Value(time.Now().UnixMilli()))

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build counter reset")
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &r.table,
		Key:                       channelKey(channelID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return appErrors.NewDatabaseError("reset question counter", err)
	}
	return nil
}
