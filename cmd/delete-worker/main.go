package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"forum-backend/domain/forum"
	"forum-backend/infrastructure/config"
	"forum-backend/infrastructure/di"
)

// container holds the dependency injection container
var container *di.Container

// init runs during cold start
func init() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
}

// Handler consumes purge jobs from the deletion queue. A returned error
// leaves the batch on the queue for redelivery; every delete is
// idempotent by key, so reprocessing a partially completed job is safe.
func Handler(ctx context.Context, event events.SQSEvent) error {
	for _, record := range event.Records {
		var channel forum.Channel
		if err := json.Unmarshal([]byte(record.Body), &channel); err != nil {
			// A malformed job can never succeed; dropping it beats
			// redelivering it forever.
			container.Logger.Error("Discarding malformed purge job",
				zap.String("messageId", record.MessageId),
				zap.Error(err),
			)
			continue
		}

		if err := container.CascadeService.PurgeChannelQuestions(ctx, &channel); err != nil {
			container.Logger.Error("Channel purge failed, job will be redelivered",
				zap.String("channelId", channel.ChannelID),
				zap.String("messageId", record.MessageId),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

func main() {
	lambda.Start(Handler)
}
