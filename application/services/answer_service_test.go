package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"forum-backend/domain/forum"
	appErrors "forum-backend/pkg/errors"
	"forum-backend/tests/mocks"
)

func newAnswerFixture() (*AnswerService, *mocks.MockChannelRepository, *mocks.MockQuestionRepository, *mocks.MockAnswerRepository) {
	channels := new(mocks.MockChannelRepository)
	questions := new(mocks.MockQuestionRepository)
	answers := new(mocks.MockAnswerRepository)
	svc := NewAnswerService(channels, questions, answers, zap.NewNop())
	return svc, channels, questions, answers
}

func TestAnswerCreate_IncrementsQuestionCounter(t *testing.T) {
	svc, channels, questions, answers := newAnswerFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "general").Return(publicChannel(), nil)
	answers.On("Create", ctx, mock.AnythingOfType("*forum.Answer")).Return(nil)
	questions.On("AdjustTotalAnswers", ctx, "general", "q1", 1).Return(nil)

	answer, err := svc.Create(ctx, "general", "q1", "Use the deploy script.", "carol")

	require.NoError(t, err)
	assert.Equal(t, "q1", answer.QuestionID)
	assert.Equal(t, "carol", answer.PostedBy)
	assert.False(t, answer.IsAccepted)
	assert.Len(t, answer.AnswerID, 8)
	questions.AssertExpectations(t)
}

func TestAnswerCreate_PrivateChannelDeniesOutsider(t *testing.T) {
	svc, channels, _, answers := newAnswerFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "staff").Return(privateChannel(), nil)

	_, err := svc.Create(ctx, "staff", "q1", "me too", "bob")

	assert.True(t, appErrors.IsForbidden(err))
	answers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnswerUpdate_OwnershipFailurePropagatesForbidden(t *testing.T) {
	svc, channels, _, answers := newAnswerFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "general").Return(publicChannel(), nil)
	answers.On("UpdateOwned", ctx, "q1", "a1", "edited", "bob").
		Return(appErrors.NewForbiddenError("access denied: user bob is not the owner of the answer"))

	err := svc.Update(ctx, "general", "q1", "a1", "edited", "bob")

	assert.True(t, appErrors.IsForbidden(err))
}

func TestAnswerUpdate_OwnerSucceeds(t *testing.T) {
	svc, channels, _, answers := newAnswerFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "general").Return(publicChannel(), nil)
	answers.On("UpdateOwned", ctx, "q1", "a1", "edited", "alice").Return(nil)

	require.NoError(t, svc.Update(ctx, "general", "q1", "a1", "edited", "alice"))
	answers.AssertExpectations(t)
}

func TestAnswerDelete_OwnershipChecked(t *testing.T) {
	svc, channels, _, answers := newAnswerFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "general").Return(publicChannel(), nil)
	answers.On("DeleteOwned", ctx, "q1", "a1", "alice").Return(nil)

	require.NoError(t, svc.Delete(ctx, "general", "q1", "a1", "alice"))
}

func TestAnswerVote_InvalidOperation(t *testing.T) {
	svc, channels, _, answers := newAnswerFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "general").Return(publicChannel(), nil)

	err := svc.Vote(ctx, "general", "q1", "a1", "bob", "boost")

	assert.True(t, appErrors.IsValidation(err))
	answers.AssertNotCalled(t, "AdjustTotalVotes", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAnswerAccept_OnlyQuestionAuthor(t *testing.T) {
	svc, channels, questions, answers := newAnswerFixture()
	ctx := context.Background()
	question := &forum.Question{ChannelID: "general", QuestionID: "q1", PostedBy: "alice"}

	channels.On("Get", ctx, "general").Return(publicChannel(), nil)
	questions.On("Get", ctx, "general", "q1").Return(question, nil)

	err := svc.Accept(ctx, "general", "q1", "a1", "bob", true)
	assert.True(t, appErrors.IsForbidden(err))
	answers.AssertNotCalled(t, "SetAccepted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	answers.On("SetAccepted", ctx, "q1", "a1", true).Return(nil)
	require.NoError(t, svc.Accept(ctx, "general", "q1", "a1", "alice", true))
}
