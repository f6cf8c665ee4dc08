// Package eventbridge publishes forum lifecycle events to an AWS
// EventBridge bus.
package eventbridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"forum-backend/application/ports"
	appErrors "forum-backend/pkg/errors"
)

const (
	eventSource      = "forum.backend"
	purgedDetailType = "forum.questions.purged"
)

// questionsPurgedDetail is the event payload announcing a completed
// cascade.
type questionsPurgedDetail struct {
	ChannelID        string `json:"channelId"`
	QuestionsDeleted int    `json:"questionsDeleted"`
	AnswersDeleted   int    `json:"answersDeleted"`
	PurgedAt         int64  `json:"purgedAt"`
}

// Publisher implements ports.EventPublisher on EventBridge.
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates an EventBridge-backed event publisher.
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{client: client, eventBusName: eventBusName, logger: logger}
}

// PublishQuestionsPurged announces that a channel's questions and
// answers have been removed. Callers treat failures as non-fatal.
func (p *Publisher) PublishQuestionsPurged(ctx context.Context, channelID string, questions, answers int) error {
	detail, err := json.Marshal(questionsPurgedDetail{
		ChannelID:        channelID,
		QuestionsDeleted: questions,
		AnswersDeleted:   answers,
		PurgedAt:         time.Now().UnixMilli(),
	})
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal purge event")
	}

	out, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: &p.eventBusName,
				Source:       aws.String(eventSource),
				DetailType:   aws.String(purgedDetailType),
				Detail:       aws.String(string(detail)),
			},
		},
	})
	if err != nil {
		return appErrors.NewDatabaseError("publish purge event", err)
	}
	if out.FailedEntryCount > 0 {
		for _, entry := range out.Entries {
			if entry.ErrorCode != nil {
				p.logger.Error("Event bus rejected purge event",
					zap.String("errorCode", aws.ToString(entry.ErrorCode)),
					zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
				)
			}
		}
		return appErrors.NewInternalError("event bus rejected purge event")
	}
	return nil
}
