// Package dynamodb implements the repository ports against AWS DynamoDB.
// Ownership and emptiness rules are enforced here as conditional writes:
// the precondition and the mutation are one atomic storage operation.
package dynamodb

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// isConditionalCheckFailed reports whether err is a failed write
// precondition, which the repositories translate into the domain
// outcome the operation defines (Forbidden or Conflict).
func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	// TransactWriteItems surfaces the same condition differently.
	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		for _, reason := range canceled.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}
