package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"forum-backend/application/ports"
	appErrors "forum-backend/pkg/errors"
)

// maxBatchAttempts bounds resubmission of unprocessed items before the
// whole job is handed back to the queue for redelivery.
const maxBatchAttempts = 3

// batchDelete removes up to ports.MaxBatchSize items in one
// BatchWriteItem call, resubmitting whatever the store reports as
// unprocessed. Deleting an absent key is a no-op, which is what makes
// redelivered cascade jobs safe.
func batchDelete(ctx context.Context, client *dynamodb.Client, table string, keys []map[string]types.AttributeValue) error {
	if len(keys) == 0 {
		return nil
	}
	if len(keys) > ports.MaxBatchSize {
		return appErrors.NewInternalError(
			fmt.Sprintf("batch of %d exceeds the %d-item store limit", len(keys), ports.MaxBatchSize))
	}

	requests := make([]types.WriteRequest, 0, len(keys))
	for _, key := range keys {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: key},
		})
	}

	for attempt := 0; attempt < maxBatchAttempts; attempt++ {
		out, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{table: requests},
		})
		if err != nil {
			return appErrors.NewDatabaseError("batch delete", err)
		}

		unprocessed := out.UnprocessedItems[table]
		if len(unprocessed) == 0 {
			return nil
		}
		requests = unprocessed
	}

	return appErrors.NewInternalError("batch delete left unprocessed items after retries")
}
