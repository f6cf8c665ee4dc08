package forum

import (
	"fmt"
	"strings"

	appErrors "forum-backend/pkg/errors"
)

// VoteOperation is the direction of a vote on a question or answer.
type VoteOperation string

const (
	VoteUp   VoteOperation = "UP"
	VoteDown VoteOperation = "DOWN"
)

// ParseVoteOperation parses a vote operation case-insensitively.
func ParseVoteOperation(s string) (VoteOperation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(VoteUp):
		return VoteUp, nil
	case string(VoteDown):
		return VoteDown, nil
	default:
		return "", appErrors.NewValidationError(fmt.Sprintf("invalid vote operation: %s", s))
	}
}

// Delta returns the counter adjustment for the operation.
func (v VoteOperation) Delta() int {
	if v == VoteDown {
		return -1
	}
	return 1
}
