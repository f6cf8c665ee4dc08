package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"forum-backend/application/ports"
	"forum-backend/domain/forum"
	appErrors "forum-backend/pkg/errors"
	"forum-backend/tests/mocks"
)

func newQuestionFixture() (*QuestionService, *mocks.MockChannelRepository, *mocks.MockQuestionRepository, *mocks.MockDeletionQueue) {
	channels := new(mocks.MockChannelRepository)
	questions := new(mocks.MockQuestionRepository)
	queue := new(mocks.MockDeletionQueue)
	svc := NewQuestionService(channels, questions, queue, zap.NewNop())
	return svc, channels, questions, queue
}

func publicChannel() *forum.Channel {
	return &forum.Channel{
		ChannelID:    "general",
		Name:         "General",
		Visibility:   forum.VisibilityPublic,
		Participants: []forum.Participant{{Name: "alice", IsOwner: true}},
	}
}

func privateChannel() *forum.Channel {
	return &forum.Channel{
		ChannelID:    "staff",
		Name:         "Staff",
		Visibility:   forum.VisibilityPrivate,
		Participants: []forum.Participant{{Name: "alice", IsOwner: true}},
	}
}

func TestQuestionCreate_IncrementsChannelCounter(t *testing.T) {
	svc, channels, questions, _ := newQuestionFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "general").Return(publicChannel(), nil)
	questions.On("Create", ctx, mock.AnythingOfType("*forum.Question")).Return(nil)
	channels.On("AdjustTotalQuestions", ctx, "general", 1).Return(nil)

	question, err := svc.Create(ctx, "general", "How do I deploy?", "bob")

	require.NoError(t, err)
	assert.Equal(t, "general", question.ChannelID)
	assert.Equal(t, "bob", question.PostedBy)
	assert.Len(t, question.QuestionID, 8)
	assert.Zero(t, question.TotalVotes)
	channels.AssertExpectations(t)
	questions.AssertExpectations(t)
}

func TestQuestionCreate_PrivateChannelDeniesOutsider(t *testing.T) {
	svc, channels, questions, _ := newQuestionFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "staff").Return(privateChannel(), nil)

	_, err := svc.Create(ctx, "staff", "secret?", "bob")

	require.Error(t, err)
	assert.True(t, appErrors.IsForbidden(err))
	questions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuestionCreate_MissingChannelIsNotFound(t *testing.T) {
	svc, channels, _, _ := newQuestionFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "nope").Return(nil, appErrors.NewNotFoundError("channel"))

	_, err := svc.Create(ctx, "nope", "anyone?", "bob")

	assert.True(t, appErrors.IsNotFound(err))
}

func TestQuestionDelete_OwnershipFailurePropagatesForbidden(t *testing.T) {
	svc, channels, questions, _ := newQuestionFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "general").Return(publicChannel(), nil)
	questions.On("DeleteOwned", ctx, "general", "q1", "mallory").
		Return(appErrors.NewForbiddenError("access denied: user mallory is not the owner of the question"))

	err := svc.Delete(ctx, "general", "q1", "mallory")

	assert.True(t, appErrors.IsForbidden(err))
	channels.AssertNotCalled(t, "AdjustTotalQuestions", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuestionDelete_DecrementsChannelCounter(t *testing.T) {
	svc, channels, questions, _ := newQuestionFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "general").Return(publicChannel(), nil)
	questions.On("DeleteOwned", ctx, "general", "q1", "alice").Return(nil)
	channels.On("AdjustTotalQuestions", ctx, "general", -1).Return(nil)

	err := svc.Delete(ctx, "general", "q1", "alice")

	require.NoError(t, err)
	channels.AssertExpectations(t)
}

func TestQuestionVote(t *testing.T) {
	svc, channels, questions, _ := newQuestionFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "general").Return(publicChannel(), nil)
	questions.On("AdjustTotalVotes", ctx, "general", "q1", 1).Return(nil)
	questions.On("AdjustTotalVotes", ctx, "general", "q1", -1).Return(nil)

	require.NoError(t, svc.Vote(ctx, "general", "q1", "bob", "up"))
	require.NoError(t, svc.Vote(ctx, "general", "q1", "bob", "down"))

	err := svc.Vote(ctx, "general", "q1", "bob", "sideways")
	assert.True(t, appErrors.IsValidation(err))
}

func TestQuestionList_ValidatesTimeWindow(t *testing.T) {
	svc, _, questions, _ := newQuestionFixture()
	ctx := context.Background()

	_, err := svc.List(ctx, ports.ListQuestionsQuery{ChannelID: "general", Limit: 10, Start: 100})
	assert.True(t, appErrors.IsValidation(err))

	_, err = svc.List(ctx, ports.ListQuestionsQuery{ChannelID: "general", Limit: 10, Start: 100, End: 50})
	assert.True(t, appErrors.IsValidation(err))

	_, err = svc.List(ctx, ports.ListQuestionsQuery{ChannelID: "", Limit: 10})
	assert.True(t, appErrors.IsValidation(err))

	_, err = svc.List(ctx, ports.ListQuestionsQuery{ChannelID: "general", Limit: 0})
	assert.True(t, appErrors.IsValidation(err))

	questions.On("List", ctx, mock.Anything).Return(&ports.QuestionPage{}, nil)
	_, err = svc.List(ctx, ports.ListQuestionsQuery{ChannelID: "general", Limit: 10, Start: 100, End: 200})
	assert.NoError(t, err)
}

func TestRequestPurge_EnqueuesChannelSnapshot(t *testing.T) {
	svc, channels, _, queue := newQuestionFixture()
	ctx := context.Background()
	channel := publicChannel()
	channel.TotalQuestions = 12

	channels.On("Get", ctx, "general").Return(channel, nil)
	queue.On("EnqueueChannelPurge", ctx, channel).Return(nil)

	err := svc.RequestPurge(ctx, "general")

	require.NoError(t, err)
	queue.AssertExpectations(t)
}

func TestRequestPurge_MissingChannel(t *testing.T) {
	svc, channels, _, queue := newQuestionFixture()
	ctx := context.Background()

	channels.On("Get", ctx, "nope").Return(nil, appErrors.NewNotFoundError("channel"))

	err := svc.RequestPurge(ctx, "nope")

	assert.True(t, appErrors.IsNotFound(err))
	queue.AssertNotCalled(t, "EnqueueChannelPurge", mock.Anything, mock.Anything)
}
