// Package ports defines the interfaces the application services depend
// on. Infrastructure adapters implement them; tests substitute mocks.
package ports

import (
	"context"

	"forum-backend/domain/forum"
)

// MaxBatchSize is the largest number of items a single bulk delete call
// may carry. It mirrors the 25-item BatchWriteItem limit of the store
// and is an external constraint, not a tunable.
const MaxBatchSize = 25

// ListQuestionsQuery selects a page of questions within a channel,
// optionally restricted to a creation-time window. Start and End are
// epoch milliseconds; both must be set together.
type ListQuestionsQuery struct {
	ChannelID string
	Limit     int
	Cursor    string
	Start     int64
	End       int64
}

// QuestionPage is one page of a channel's questions.
type QuestionPage struct {
	Items      []forum.Question
	NextCursor string
}

// AnswerPage is one page of a question's answers.
type AnswerPage struct {
	Items      []forum.Answer
	NextCursor string
}

// ChannelPage is one page of channels.
type ChannelPage struct {
	Items      []forum.Channel
	NextCursor string
}

// ChannelRepository persists channels and their denormalized question
// counter.
type ChannelRepository interface {
	// Create stores a new channel; a key collision yields a Conflict error.
	Create(ctx context.Context, channel *forum.Channel) error
	// Get returns the channel or a NotFound error.
	Get(ctx context.Context, channelID string) (*forum.Channel, error)
	List(ctx context.Context, limit int, cursor string) (*ChannelPage, error)
	// AddParticipant appends to the channel's participant list.
	AddParticipant(ctx context.Context, channelID string, p forum.Participant) error
	// Delete removes the channel only while totalQuestions is zero;
	// otherwise it yields a Conflict error.
	Delete(ctx context.Context, channelID string) error
	// AdjustTotalQuestions atomically adds delta to totalQuestions and
	// bumps updatedAt. Negative deltas are floored at zero.
	AdjustTotalQuestions(ctx context.Context, channelID string, delta int) error
	// ResetTotalQuestions sets totalQuestions to zero and bumps updatedAt.
	ResetTotalQuestions(ctx context.Context, channelID string) error
}

// QuestionRepository persists questions keyed by (channelId, questionId).
type QuestionRepository interface {
	Create(ctx context.Context, question *forum.Question) error
	Get(ctx context.Context, channelID, questionID string) (*forum.Question, error)
	List(ctx context.Context, query ListQuestionsQuery) (*QuestionPage, error)
	// ListAllByChannel returns every question in the channel. Used by the
	// cascade worker, which deletes what it enumerates.
	ListAllByChannel(ctx context.Context, channelID string) ([]forum.Question, error)
	// DeleteOwned removes the question only if requestedBy matches the
	// stored author; a precondition failure yields a Forbidden error.
	DeleteOwned(ctx context.Context, channelID, questionID, requestedBy string) error
	// DeleteBatch removes up to MaxBatchSize questions in one call.
	DeleteBatch(ctx context.Context, questions []forum.Question) error
	AdjustTotalVotes(ctx context.Context, channelID, questionID string, delta int) error
	AdjustTotalAnswers(ctx context.Context, channelID, questionID string, delta int) error
}

// AnswerRepository persists answers keyed by (questionId, answerId).
type AnswerRepository interface {
	Create(ctx context.Context, answer *forum.Answer) error
	List(ctx context.Context, questionID string, limit int, cursor string) (*AnswerPage, error)
	ListAllByQuestion(ctx context.Context, questionID string) ([]forum.Answer, error)
	// UpdateOwned rewrites the answer body only if updatedBy matches the
	// stored author; a precondition failure yields a Forbidden error.
	UpdateOwned(ctx context.Context, questionID, answerID, text, updatedBy string) error
	DeleteOwned(ctx context.Context, questionID, answerID, requestedBy string) error
	DeleteBatch(ctx context.Context, answers []forum.Answer) error
	AdjustTotalVotes(ctx context.Context, questionID, answerID string, delta int) error
	SetAccepted(ctx context.Context, questionID, answerID string, accepted bool) error
}

// DeletionQueue dispatches channel purge jobs to the cascade worker.
// Delivery is at-least-once; the job must be safe to re-run.
type DeletionQueue interface {
	EnqueueChannelPurge(ctx context.Context, channel *forum.Channel) error
}

// EventPublisher announces completed purges on the event bus.
type EventPublisher interface {
	PublishQuestionsPurged(ctx context.Context, channelID string, questions, answers int) error
}

// MetricsEmitter records purge volumes for operational dashboards.
// Emission is best-effort and never fails the purge.
type MetricsEmitter interface {
	RecordPurge(ctx context.Context, questions, answers int)
}
