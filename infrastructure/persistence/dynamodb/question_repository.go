package dynamodb

import (
	"context"

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

// questionRepository persists questions in a table keyed by
// (channelId, questionId), with a local secondary index ordering them
// by createdAt for time-windowed listing.
type questionRepository struct {
	client  *dynamodb.Client
	table   string
	timeLSI string
	logger  *zap.Logger
}

// NewQuestionRepository creates a DynamoDB-backed question repository.
func NewQuestionRepository(client *dynamodb.Client, table, timeLSI string, logger *zap.Logger) ports.QuestionRepository {
	return &questionRepository{client: client, table: table, timeLSI: timeLSI, logger: logger}
}

func questionKey(channelID, questionID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"channelId":  &types.AttributeValueMemberS{Value: channelID},
		"questionId": &types.AttributeValueMemberS{Value: questionID},
	}
}

func (r *questionRepository) Create(ctx context.Context, question *forum.Question) error {
	item, err := attributevalue.MarshalMap(question)
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal question")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	})
	if err != nil {
		return appErrors.NewDatabaseError("create question", err)
	}
	return nil
}

func (r *questionRepository) Get(ctx context.Context, channelID, questionID string) (*forum.Question, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key:       questionKey(channelID, questionID),
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("get question", err)
	}
	if len(out.Item) == 0 {
		return nil, appErrors.NewNotFoundError("question")
	}

	var question forum.Question
	if err := attributevalue.UnmarshalMap(out.Item, &question); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal question")
	}
	return &question, nil
}

// List pages through a channel's questions, newest first. When the
// query carries a time window it switches to the createdAt index so the
// window becomes part of the key condition instead of a filter.
func (r *questionRepository) List(ctx context.Context, query ports.ListQuestionsQuery) (*ports.QuestionPage, error) {
	startKey, err := decodeCursor(query.Cursor)
	if err != nil {
		return nil, err
	}

	keyCond := expression.Key("channelId").Equal(expression.Value(query.ChannelID))
	input := &dynamodb.QueryInput{
		TableName:         &r.table,
		Limit:             aws.Int32(int32(query.Limit)),
		ExclusiveStartKey: startKey,
		ScanIndexForward:  aws.Bool(false),
	}
	if query.Start != 0 || query.End != 0 {
		keyCond = keyCond.And(
			expression.Key("createdAt").Between(expression.Value(query.Start), expression.Value(query.End)))
		input.IndexName = &r.timeLSI
	}

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to build question query")
	}
	input.KeyConditionExpression = expr.KeyCondition()
	input.ExpressionAttributeNames = expr.Names()
	input.ExpressionAttributeValues = expr.Values()

	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, appErrors.NewDatabaseError("list questions", err)
	}

	var questions []forum.Question
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &questions); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal questions")
	}

	next, err := encodeCursor(out.LastEvaluatedKey)
	if err != nil {
		return nil, err
	}
	return &ports.QuestionPage{Items: questions, NextCursor: next}, nil
}

// ListAllByChannel drains every page of the channel's questions. The
// cascade worker deletes what this enumerates, so it must not stop at
// a page boundary.
func (r *questionRepository) ListAllByChannel(ctx context.Context, channelID string) ([]forum.Question, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("channelId").Equal(expression.Value(channelID))).
		Build()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to build question enumeration")
	}

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 &r.table,
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var questions []forum.Question
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, appErrors.NewDatabaseError("enumerate questions", err)
		}
		var batch []forum.Question
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, appErrors.Wrap(err, "failed to unmarshal questions")
		}
		questions = append(questions, batch...)
	}
	return questions, nil
}

// DeleteOwned removes the question only when the stored author matches
// the caller. The ownership check and the delete are one atomic
// operation.
func (r *questionRepository) DeleteOwned(ctx context.Context, channelID, questionID, requestedBy string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.Name("postedBy").Equal(expression.Value(requestedBy))).
		Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build question delete condition")
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 &r.table,
		Key:                       questionKey(channelID, questionID),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewForbiddenError("user " + requestedBy + " is not the owner of the question")
		}
		return appErrors.NewDatabaseError("delete question", err)
	}
	return nil
}

func (r *questionRepository) DeleteBatch(ctx context.Context, questions []forum.Question) error {
	keys := make([]map[string]types.AttributeValue, 0, len(questions))
	for _, q := range questions {
		keys = append(keys, questionKey(q.ChannelID, q.QuestionID))
	}
	return batchDelete(ctx, r.client, r.table, keys)
}

func (r *questionRepository) AdjustTotalVotes(ctx context.Context, channelID, questionID string, delta int) error {
	return adjustCounter(ctx, r.client, r.table, questionKey(channelID, questionID), "totalVotes", delta, false)
}

func (r *questionRepository) AdjustTotalAnswers(ctx context.Context, channelID, questionID string, delta int) error {
	return adjustCounter(ctx, r.client, r.table, questionKey(channelID, questionID), "totalAnswers", delta, true)
}
