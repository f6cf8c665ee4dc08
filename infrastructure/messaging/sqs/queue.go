// Package sqs dispatches channel purge jobs to the cascade worker.
package sqs

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"

	"forum-backend/application/ports"
	"forum-backend/domain/forum"
	appErrors "forum-backend/pkg/errors"
)

// DeletionQueue sends purge jobs to an SQS queue. The message body is
// the full channel snapshot, so the worker does not need to read the
// channel back before purging it.
type DeletionQueue struct {
	client   *sqs.Client
	queueURL string
	logger   *zap.Logger
}

// NewDeletionQueue creates an SQS-backed deletion queue.
func NewDeletionQueue(client *sqs.Client, queueURL string, logger *zap.Logger) ports.DeletionQueue {
	return &DeletionQueue{client: client, queueURL: queueURL, logger: logger}
}

// EnqueueChannelPurge serializes the channel and enqueues it. Delivery
// is at-least-once; the worker tolerates duplicates.
func (q *DeletionQueue) EnqueueChannelPurge(ctx context.Context, channel *forum.Channel) error {
	body, err := json.Marshal(channel)
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal purge job")
	}

	payload := string(body)
	_, err = q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    &q.queueURL,
		MessageBody: &payload,
	})
	if err != nil {
		return appErrors.NewDatabaseError("enqueue channel purge", err)
	}

	q.logger.Info("Enqueued channel purge",
		zap.String("channelId", channel.ChannelID),
		zap.Int("totalQuestions", channel.TotalQuestions),
	)
	return nil
}
