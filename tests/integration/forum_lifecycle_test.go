package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"forum-backend/application/services"
	"forum-backend/domain/forum"
	"forum-backend/pkg/auth"
	"forum-backend/tests/mocks"
)

// fakeQueue routes purge jobs straight into the cascade service,
// standing in for SQS plus the worker Lambda.
type fakeQueue struct {
	cascade *services.CascadeService
}

func (q *fakeQueue) EnqueueChannelPurge(ctx context.Context, channel *forum.Channel) error {
	return q.cascade.PurgeChannelQuestions(ctx, channel)
}

// TestChannelLifecycle drives a channel from creation through purge to
// deletion across the service layer, with only the storage mocked.
func TestChannelLifecycle(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	channels := new(mocks.MockChannelRepository)
	questions := new(mocks.MockQuestionRepository)
	answers := new(mocks.MockAnswerRepository)
	events := new(mocks.MockEventPublisher)
	metrics := new(mocks.MockMetricsEmitter)

	cascade := services.NewCascadeService(channels, questions, answers, events, metrics, 2, logger)
	queue := &fakeQueue{cascade: cascade}
	channelSvc := services.NewChannelService(channels, logger)
	questionSvc := services.NewQuestionService(channels, questions, queue, logger)

	admin := &auth.Claims{Subject: "alice", Roles: []auth.Role{auth.RoleAdmin}}

	// Create the channel.
	channels.On("Create", ctx, mock.AnythingOfType("*forum.Channel")).Return(nil).Once()
	channel, err := channelSvc.Create(ctx, admin, "Release Planning", "alice", "PUBLIC")
	require.NoError(t, err)
	assert.Equal(t, "release-planning", channel.ChannelID)

	// Post two questions; each create bumps the counter.
	stored := make([]forum.Question, 0, 2)
	var mu sync.Mutex
	channels.On("Get", mock.Anything, "release-planning").Return(channel, nil)
	questions.On("Create", mock.Anything, mock.AnythingOfType("*forum.Question")).
		Run(func(args mock.Arguments) {
			mu.Lock()
			defer mu.Unlock()
			stored = append(stored, *args.Get(1).(*forum.Question))
		}).Return(nil).Twice()
	channels.On("AdjustTotalQuestions", mock.Anything, "release-planning", 1).
		Run(func(mock.Arguments) { channel.TotalQuestions++ }).Return(nil).Twice()

	_, err = questionSvc.Create(ctx, "release-planning", "When is the cutoff?", "bob")
	require.NoError(t, err)
	_, err = questionSvc.Create(ctx, "release-planning", "Who owns the changelog?", "carol")
	require.NoError(t, err)
	require.Equal(t, 2, channel.TotalQuestions)

	// Purge: the job enumerates what was stored, deletes answers before
	// questions, then resets the counter.
	questions.On("ListAllByChannel", mock.Anything, "release-planning").
		Return(append([]forum.Question(nil), stored...), nil)
	answers.On("ListAllByQuestion", mock.Anything, mock.Anything).Return([]forum.Answer{}, nil)
	questions.On("DeleteBatch", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			mu.Lock()
			defer mu.Unlock()
			stored = stored[:0]
		}).Return(nil)
	channels.On("ResetTotalQuestions", mock.Anything, "release-planning").
		Run(func(mock.Arguments) { channel.TotalQuestions = 0 }).Return(nil).Once()
	events.On("PublishQuestionsPurged", mock.Anything, "release-planning", 2, 0).Return(nil).Once()
	metrics.On("RecordPurge", mock.Anything, 2, 0).Return().Once()

	require.NoError(t, questionSvc.RequestPurge(ctx, "release-planning"))
	assert.Equal(t, 0, channel.TotalQuestions)
	assert.Empty(t, stored)

	// The channel is now empty and may be deleted.
	channels.On("Delete", ctx, "release-planning").Return(nil).Once()
	require.NoError(t, channelSvc.Delete(ctx, "release-planning"))

	channels.AssertExpectations(t)
	questions.AssertExpectations(t)
	events.AssertExpectations(t)
	metrics.AssertExpectations(t)
}
