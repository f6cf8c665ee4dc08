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

// answerRepository persists answers in a table keyed by
// (questionId, answerId).
type answerRepository struct {
	client *dynamodb.Client
	table  string
	logger *zap.Logger
}

// NewAnswerRepository creates a DynamoDB-backed answer repository.
func NewAnswerRepository(client *dynamodb.Client, table string, logger *zap.Logger) ports.AnswerRepository {
	return &answerRepository{client: client, table: table, logger: logger}
}

func answerKey(questionID, answerID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"questionId": &types.AttributeValueMemberS{Value: questionID},
		"answerId":   &types.AttributeValueMemberS{Value: answerID},
	}
}

func (r *answerRepository) Create(ctx context.Context, answer *forum.Answer) error {
	item, err := attributevalue.MarshalMap(answer)
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal answer")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	})
	if err != nil {
		return appErrors.NewDatabaseError("create answer", err)
	}
	return nil
}

func (r *answerRepository) List(ctx context.Context, questionID string, limit int, cursor string) (*ports.AnswerPage, error) {
	startKey, err := decodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("questionId").Equal(expression.Value(questionID))).
		Build()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to build answer query")
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 &r.table,
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(int32(limit)),
		ExclusiveStartKey:         startKey,
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("list answers", err)
	}

	var answers []forum.Answer
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &answers); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal answers")
	}

	next, err := encodeCursor(out.LastEvaluatedKey)
	if err != nil {
		return nil, err
	}
	return &ports.AnswerPage{Items: answers, NextCursor: next}, nil
}

// ListAllByQuestion drains every page of the question's answers for the
// cascade worker.
func (r *answerRepository) ListAllByQuestion(ctx context.Context, questionID string) ([]forum.Answer, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("questionId").Equal(expression.Value(questionID))).
		Build()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to build answer enumeration")
	}

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 &r.table,
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var answers []forum.Answer
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, appErrors.NewDatabaseError("enumerate answers", err)
		}
		var batch []forum.Answer
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, appErrors.Wrap(err, "failed to unmarshal answers")
		}
		answers = append(answers, batch...)
	}
	return answers, nil
}

// UpdateOwned rewrites the answer body only when the stored author
// matches the caller.
func (r *answerRepository) UpdateOwned(ctx context.Context, questionID, answerID, text, updatedBy string) error {
	update := expression.
		Set(expression.Name("answer"), expression.Value(text)).
		Set(expression.Name("updatedAt"), expression.Value(time.Now().UnixMilli()))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.Name("postedBy").Equal(expression.Value(updatedBy))).
		Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build answer update")
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &r.table,
		Key:                       answerKey(questionID, answerID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewForbiddenError("user " + updatedBy + " is not the owner of the answer")
		}
		return appErrors.NewDatabaseError("update answer", err)
	}
	return nil
}

func (r *answerRepository) DeleteOwned(ctx context.Context, questionID, answerID, requestedBy string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.Name("postedBy").Equal(expression.Value(requestedBy))).
		Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build answer delete condition")
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 &r.table,
		Key:                       answerKey(questionID, answerID),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewForbiddenError("user " + requestedBy + " is not the owner of the answer")
		}
		return appErrors.NewDatabaseError("delete answer", err)
	}
	return nil
}

func (r *answerRepository) DeleteBatch(ctx context.Context, answers []forum.Answer) error {
	keys := make([]map[string]types.AttributeValue, 0, len(answers))
	for _, a := range answers {
		keys = append(keys, answerKey(a.QuestionID, a.AnswerID))
	}
	return batchDelete(ctx, r.client, r.table, keys)
}

func (r *answerRepository) AdjustTotalVotes(ctx context.Context, questionID, answerID string, delta int) error {
	return adjustCounter(ctx, r.client, r.table, answerKey(questionID, answerID), "totalVotes", delta, false)
}

func (r *answerRepository) SetAccepted(ctx context.Context, questionID, answerID string, accepted bool) error {
	update := expression.
		Set(expression.Name("isAccepted"), expression.Value(accepted)).
		Set(expression.Name("updatedAt"), expression.Value(time.Now().UnixMilli()))

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build acceptance update")
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &r.table,
		Key:                       answerKey(questionID, answerID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return appErrors.NewDatabaseError("set answer acceptance", err)
	}
	return nil
}
