package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"forum-backend/application/ports"
	"forum-backend/domain/forum"
	appErrors "forum-backend/pkg/errors"
	"forum-backend/pkg/utils"
)

const answerIDBytes = 4

// AnswerService manages answers beneath a question. Channel membership
// gates every operation; content ownership additionally gates update and
// delete through storage preconditions.
type AnswerService struct {
	channels  ports.ChannelRepository
	questions ports.QuestionRepository
	answers   ports.AnswerRepository
	logger    *zap.Logger
}

// NewAnswerService creates a new answer service
func NewAnswerService(
	channels ports.ChannelRepository,
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	logger *zap.Logger,
) *AnswerService {
	return &AnswerService{
		channels:  channels,
		questions: questions,
		answers:   answers,
		logger:    logger,
	}
}

// checkAccess resolves the channel and verifies the actor may act in it.
func (s *AnswerService) checkAccess(ctx context.Context, channelID, actor string) error {
	channel, err := s.channels.Get(ctx, channelID)
	if err != nil {
		return err
	}
	return forum.CheckChannelAccess(channel, actor)
}

// Create posts an answer and increments the question's answer counter.
func (s *AnswerService) Create(ctx context.Context, channelID, questionID, text, postedBy string) (*forum.Answer, error) {
	if err := s.checkAccess(ctx, channelID, postedBy); err != nil {
		return nil, err
	}

	answer := forum.NewAnswer(channelID, questionID, utils.NewShortID(answerIDBytes), text, postedBy)
	if err := s.answers.Create(ctx, answer); err != nil {
		return nil, err
	}

	if err := s.questions.AdjustTotalAnswers(ctx, channelID, questionID, 1); err != nil {
		return nil, err
	}

	return answer, nil
}

// List returns one page of a question's answers.
func (s *AnswerService) List(ctx context.Context, questionID string, limit int, cursor string) (*ports.AnswerPage, error) {
	if questionID == "" {
		return nil, appErrors.NewValidationError("required parameter questionId is missing")
	}
	if limit < 1 {
		return nil, appErrors.NewValidationError("count must be greater than zero")
	}
	return s.answers.List(ctx, questionID, limit, cursor)
}

// Update rewrites the answer body. Only the stored author passes the
// ownership precondition.
func (s *AnswerService) Update(ctx context.Context, channelID, questionID, answerID, text, updatedBy string) error {
	if err := s.checkAccess(ctx, channelID, updatedBy); err != nil {
		return err
	}
	return s.answers.UpdateOwned(ctx, questionID, answerID, text, updatedBy)
}

// Delete removes the answer, ownership-checked at the storage layer.
func (s *AnswerService) Delete(ctx context.Context, channelID, questionID, answerID, requestedBy string) error {
	if err := s.checkAccess(ctx, channelID, requestedBy); err != nil {
		return err
	}
	return s.answers.DeleteOwned(ctx, questionID, answerID, requestedBy)
}

// Vote applies an up or down vote to the answer's counter.
func (s *AnswerService) Vote(ctx context.Context, channelID, questionID, answerID, voter, operation string) error {
	if err := s.checkAccess(ctx, channelID, voter); err != nil {
		return err
	}

	op, err := forum.ParseVoteOperation(operation)
	if err != nil {
		return err
	}

	return s.answers.AdjustTotalVotes(ctx, questionID, answerID, op.Delta())
}

// Accept marks an answer as accepted. Only the author of the question
// may accept an answer to it.
func (s *AnswerService) Accept(ctx context.Context, channelID, questionID, answerID, acceptor string, accepted bool) error {
	if err := s.checkAccess(ctx, channelID, acceptor); err != nil {
		return err
	}

	question, err := s.questions.Get(ctx, channelID, questionID)
	if err != nil {
		return err
	}
	if question.PostedBy != acceptor {
		return appErrors.NewForbiddenError(
			fmt.Sprintf("forbidden: user %s is not the owner of the question", acceptor))
	}

	return s.answers.SetAccepted(ctx, questionID, answerID, accepted)
}
