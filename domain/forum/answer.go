package forum

import "time"

// Answer belongs to exactly one question; the composite key is
// (questionId, answerId). ChannelID is carried for access checks and
// cascade bookkeeping, not as part of the key.
type Answer struct {
	QuestionID string `json:"questionId" dynamodbav:"questionId"`
	AnswerID   string `json:"answerId" dynamodbav:"answerId"`
	ChannelID  string `json:"channelId" dynamodbav:"channelId"`
	Answer     string `json:"answer" dynamodbav:"answer"`
	PostedBy   string `json:"postedBy" dynamodbav:"postedBy"`
	TotalVotes int    `json:"totalVotes" dynamodbav:"totalVotes"`
	IsAccepted bool   `json:"isAccepted" dynamodbav:"isAccepted"`
	CreatedAt  int64  `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewAnswer builds an answer with zeroed counters.
func NewAnswer(channelID, questionID, answerID, text, postedBy string) *Answer {
	now := time.Now().UnixMilli()
	return &Answer{
		QuestionID: questionID,
		AnswerID:   answerID,
		ChannelID:  channelID,
		Answer:     text,
		PostedBy:   postedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
