// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forum-backend/application/ports"
	"forum-backend/domain/forum"
)

// MockChannelRepository mocks ports.ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) Create(ctx context.Context, channel *forum.Channel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

func (m *MockChannelRepository) Get(ctx context.Context, channelID string) (*forum.Channel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forum.Channel), args.Error(1)
}

func (m *MockChannelRepository) List(ctx context.Context, limit int, cursor string) (*ports.ChannelPage, error) {
	args := m.Called(ctx, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ChannelPage), args.Error(1)
}

func (m *MockChannelRepository) AddParticipant(ctx context.Context, channelID string, p forum.Participant) error {
	args := m.Called(ctx, channelID, p)
	return args.Error(0)
}

func (m *MockChannelRepository) Delete(ctx context.Context, channelID string) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

func (m *MockChannelRepository) AdjustTotalQuestions(ctx context.Context, channelID string, delta int) error {
	args := m.Called(ctx, channelID, delta)
	return args.Error(0)
}

func (m *MockChannelRepository) ResetTotalQuestions(ctx context.Context, channelID string) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

// MockQuestionRepository mocks ports.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *forum.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Get(ctx context.Context, channelID, questionID string) (*forum.Question, error) {
	args := m.Called(ctx, channelID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forum.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, query ports.ListQuestionsQuery) (*ports.QuestionPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.QuestionPage), args.Error(1)
}

func (m *MockQuestionRepository) ListAllByChannel(ctx context.Context, channelID string) ([]forum.Question, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]forum.Question), args.Error(1)
}

func (m *MockQuestionRepository) DeleteOwned(ctx context.Context, channelID, questionID, requestedBy string) error {
	args := m.Called(ctx, channelID, questionID, requestedBy)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteBatch(ctx context.Context, questions []forum.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) AdjustTotalVotes(ctx context.Context, channelID, questionID string, delta int) error {
	args := m.Called(ctx, channelID, questionID, delta)
	return args.Error(0)
}

func (m *MockQuestionRepository) AdjustTotalAnswers(ctx context.Context, channelID, questionID string, delta int) error {
	args := m.Called(ctx, channelID, questionID, delta)
	return args.Error(0)
}

// MockAnswerRepository mocks ports.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Create(ctx context.Context, answer *forum.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) List(ctx context.Context, questionID string, limit int, cursor string) (*ports.AnswerPage, error) {
	args := m.Called(ctx, questionID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.AnswerPage), args.Error(1)
}

func (m *MockAnswerRepository) ListAllByQuestion(ctx context.Context, questionID string) ([]forum.Answer, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]forum.Answer), args.Error(1)
}

func (m *MockAnswerRepository) UpdateOwned(ctx context.Context, questionID, answerID, text, updatedBy string) error {
	args := m.Called(ctx, questionID, answerID, text, updatedBy)
	return args.Error(0)
}

func (m *MockAnswerRepository) DeleteOwned(ctx context.Context, questionID, answerID, requestedBy string) error {
	args := m.Called(ctx, questionID, answerID, requestedBy)
	return args.Error(0)
}

func (m *MockAnswerRepository) DeleteBatch(ctx context.Context, answers []forum.Answer) error {
	args := m.Called(ctx, answers)
	return args.Error(0)
}

func (m *MockAnswerRepository) AdjustTotalVotes(ctx context.Context, questionID, answerID string, delta int) error {
	args := m.Called(ctx, questionID, answerID, delta)
	return args.Error(0)
}

func (m *MockAnswerRepository) SetAccepted(ctx context.Context, questionID, answerID string, accepted bool) error {
	args := m.Called(ctx, questionID, answerID, accepted)
	return args.Error(0)
}

// MockDeletionQueue mocks ports.DeletionQueue
type MockDeletionQueue struct {
	mock.Mock
}

func (m *MockDeletionQueue) EnqueueChannelPurge(ctx context.Context, channel *forum.Channel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

// MockEventPublisher mocks ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishQuestionsPurged(ctx context.Context, channelID string, questions, answers int) error {
	args := m.Called(ctx, channelID, questions, answers)
	return args.Error(0)
}

// MockMetricsEmitter mocks ports.MetricsEmitter
type MockMetricsEmitter struct {
	mock.Mock
}

func (m *MockMetricsEmitter) RecordPurge(ctx context.Context, questions, answers int) {
	m.Called(ctx, questions, answers)
}
