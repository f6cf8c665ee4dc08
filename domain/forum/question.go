package forum

import "time"

// Question belongs to exactly one channel; the composite key is
// (channelId, questionId). TotalAnswers and TotalVotes are denormalized
// counters adjusted by answer and vote operations.
type Question struct {
	ChannelID    string `json:"channelId" dynamodbav:"channelId"`
	QuestionID   string `json:"questionId" dynamodbav:"questionId"`
	Question     string `json:"question" dynamodbav:"question"`
	PostedBy     string `json:"postedBy" dynamodbav:"postedBy"`
	TotalVotes   int    `json:"totalVotes" dynamodbav:"totalVotes"`
	TotalAnswers int    `json:"totalAnswers" dynamodbav:"totalAnswers"`
	CreatedAt    int64  `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt    int64  `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewQuestion builds a question with zeroed counters.
func NewQuestion(channelID, questionID, text, postedBy string) *Question {
	now := time.Now().UnixMilli()
	return &Question{
		ChannelID:  channelID,
		QuestionID: questionID,
		Question:   text,
		PostedBy:   postedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
