// Package forum holds the domain model: channels, questions, answers and
// the access rules that bind them. Nothing in this package performs I/O.
package forum

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	appErrors "forum-backend/pkg/errors"
)

// Visibility controls who may read and post in a channel.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

// MaxChannelNameLength bounds the human-readable channel name.
const MaxChannelNameLength = 40

// ParseVisibility parses a visibility string case-insensitively.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(VisibilityPublic):
		return VisibilityPublic, nil
	case string(VisibilityPrivate):
		return VisibilityPrivate, nil
	default:
		return "", appErrors.NewValidationError(fmt.Sprintf("unsupported channel visibility: %s", s))
	}
}

// Participant is an identity allowed to act within a private channel.
// The list is append-only; the creator is inserted as owner.
type Participant struct {
	Name    string `json:"name" dynamodbav:"name"`
	IsOwner bool   `json:"isOwner" dynamodbav:"isOwner"`
}

// Channel is the top-level forum container. TotalQuestions is a
// denormalized counter maintained by question writes and the cascade
// worker; it tracks live child rows only eventually.
type Channel struct {
	ChannelID      string        `json:"channelId" dynamodbav:"channelId"`
	Name           string        `json:"name" dynamodbav:"name"`
	CreatedBy      string        `json:"createdBy" dynamodbav:"createdBy"`
	Visibility     Visibility    `json:"visibility" dynamodbav:"visibility"`
	Participants   []Participant `json:"participants" dynamodbav:"participants"`
	TotalQuestions int           `json:"totalQuestions" dynamodbav:"totalQuestions"`
	CreatedAt      int64         `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt      int64         `json:"updatedAt" dynamodbav:"updatedAt"`
}

var specialChars = regexp.MustCompile(`[&/\\#,+()$~%.'":*?<>{}]`)
var whitespace = regexp.MustCompile(`\s+`)

// DeriveChannelID maps a channel name to its storage key: special
// characters stripped, whitespace collapsed to hyphens, lowercased.
// The mapping is deterministic so duplicate names collide on create.
func DeriveChannelID(name string) string {
	key := specialChars.ReplaceAllString(name, "")
	key = whitespace.ReplaceAllString(key, "-")
	return strings.ToLower(key)
}

// NewChannel builds a channel with the creator as sole owning participant.
func NewChannel(name, createdBy string, visibility Visibility) (*Channel, error) {
	if len(name) > MaxChannelNameLength {
		return nil, appErrors.NewValidationError(
			fmt.Sprintf("channel name can't be longer than %d characters", MaxChannelNameLength))
	}
	channelID := DeriveChannelID(name)
	if channelID == "" {
		return nil, appErrors.NewValidationError("channel name must contain at least one key character")
	}

	now := time.Now().UnixMilli()
	return &Channel{
		ChannelID:      channelID,
		Name:           name,
		CreatedBy:      createdBy,
		Visibility:     visibility,
		Participants:   []Participant{{Name: createdBy, IsOwner: true}},
		TotalQuestions: 0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
