package services

import (
	"context"

	"go.uber.org/zap"

	"forum-backend/application/ports"
	"forum-backend/domain/forum"
	appErrors "forum-backend/pkg/errors"
	"forum-backend/pkg/utils"
)

// questionIDBytes sizes generated question identifiers (8 hex characters).
const questionIDBytes = 4

// QuestionService manages question lifecycle within a channel, including
// dispatch of channel-wide purge jobs to the cascade worker.
type QuestionService struct {
	channels  ports.ChannelRepository
	questions ports.QuestionRepository
	queue     ports.DeletionQueue
	logger    *zap.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(
	channels ports.ChannelRepository,
	questions ports.QuestionRepository,
	queue ports.DeletionQueue,
	logger *zap.Logger,
) *QuestionService {
	return &QuestionService{
		channels:  channels,
		questions: questions,
		queue:     queue,
		logger:    logger,
	}
}

// Create posts a question into a channel the caller can access and
// increments the channel's question counter.
func (s *QuestionService) Create(ctx context.Context, channelID, text, postedBy string) (*forum.Question, error) {
	channel, err := s.channels.Get(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if err := forum.CheckChannelAccess(channel, postedBy); err != nil {
		return nil, err
	}

	question := forum.NewQuestion(channelID, utils.NewShortID(questionIDBytes), text, postedBy)
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	if err := s.channels.AdjustTotalQuestions(ctx, channelID, 1); err != nil {
		return nil, err
	}

	return question, nil
}

// Get returns one question by its composite key.
func (s *QuestionService) Get(ctx context.Context, channelID, questionID string) (*forum.Question, error) {
	return s.questions.Get(ctx, channelID, questionID)
}

// List returns one page of a channel's questions, newest filters applied
// through the creation-time index.
func (s *QuestionService) List(ctx context.Context, query ports.ListQuestionsQuery) (*ports.QuestionPage, error) {
	if query.ChannelID == "" {
		return nil, appErrors.NewValidationError("required parameter channelId is missing")
	}
	if query.Limit < 1 {
		return nil, appErrors.NewValidationError("count must be greater than zero")
	}
	if query.Start != 0 && query.End == 0 {
		return nil, appErrors.NewValidationError("endDateTime is required when startDateTime is provided")
	}
	if query.Start != 0 && query.End <= query.Start {
		return nil, appErrors.NewValidationError("endDateTime must be after startDateTime")
	}
	return s.questions.List(ctx, query)
}

// Delete removes a single question. The ownership check is a storage
// precondition: only the stored author can pass it, even under
// concurrent requests. On success the channel counter is decremented.
func (s *QuestionService) Delete(ctx context.Context, channelID, questionID, requestedBy string) error {
	if _, err := s.channels.Get(ctx, channelID); err != nil {
		return err
	}

	if err := s.questions.DeleteOwned(ctx, channelID, questionID, requestedBy); err != nil {
		return err
	}

	if err := s.channels.AdjustTotalQuestions(ctx, channelID, -1); err != nil {
		// The question is gone; a stale counter is tolerated and logged.
		s.logger.Warn("question deleted but counter decrement failed",
			zap.String("channelId", channelID),
			zap.String("questionId", questionID),
			zap.Error(err),
		)
	}
	return nil
}

// Vote applies an up or down vote to the question's counter.
func (s *QuestionService) Vote(ctx context.Context, channelID, questionID, voter, operation string) error {
	channel, err := s.channels.Get(ctx, channelID)
	if err != nil {
		return err
	}
	if err := forum.CheckChannelAccess(channel, voter); err != nil {
		return err
	}

	op, err := forum.ParseVoteOperation(operation)
	if err != nil {
		return err
	}

	return s.questions.AdjustTotalVotes(ctx, channelID, questionID, op.Delta())
}

// RequestPurge resolves the channel and enqueues exactly one purge job
// for the cascade worker, returning before any deletion happens. No
// duplicate suppression: a second enqueue is a safe no-op once the first
// job completes.
func (s *QuestionService) RequestPurge(ctx context.Context, channelID string) error {
	channel, err := s.channels.Get(ctx, channelID)
	if err != nil {
		return err
	}

	if err := s.queue.EnqueueChannelPurge(ctx, channel); err != nil {
		return appErrors.Wrap(err, "failed to enqueue channel purge")
	}

	s.logger.Info("channel purge enqueued",
		zap.String("channelId", channelID),
		zap.Int("totalQuestions", channel.TotalQuestions),
	)
	return nil
}
