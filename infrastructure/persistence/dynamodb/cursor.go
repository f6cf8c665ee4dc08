package dynamodb

import (
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	appErrors "forum-backend/pkg/errors"
)

// encodeCursor serializes a LastEvaluatedKey into an opaque page token.
func encodeCursor(key map[string]types.AttributeValue) (string, error) {
	if len(key) == 0 {
		return "", nil
	}
	var plain map[string]interface{}
	if err := attributevalue.UnmarshalMap(key, &plain); err != nil {
		return "", appErrors.Wrap(err, "failed to decode evaluation key")
	}
	raw, err := json.Marshal(plain)
	if err != nil {
		return "", appErrors.Wrap(err, "failed to encode page cursor")
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// decodeCursor turns a page token back into an ExclusiveStartKey.
// A malformed token is a client error, not a server fault.
func decodeCursor(cursor string) (map[string]types.AttributeValue, error) {
	if cursor == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, appErrors.NewValidationError("invalid page cursor")
	}
	var plain map[string]interface{}
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, appErrors.NewValidationError("invalid page cursor")
	}
	key, err := attributevalue.MarshalMap(plain)
	if err != nil {
		return nil, appErrors.NewValidationError("invalid page cursor")
	}
	return key, nil
}
