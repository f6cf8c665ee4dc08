package services

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"forum-backend/application/ports"
	"forum-backend/domain/forum"
	appErrors "forum-backend/pkg/errors"
	"forum-backend/pkg/utils"
)

// defaultMaxConcurrentBatches bounds parallel question batches so a large
// channel cannot saturate the store's write capacity.
const defaultMaxConcurrentBatches = 4

// CascadeService deletes a channel's entire question/answer tree in
// bounded batches and zeroes the channel's question counter when done.
//
// The job is delivered at least once and carries no intermediate state:
// every step must be safe to re-run. Deletes are idempotent by key, the
// counter is only reset after every batch succeeded, and a failed run
// returns its error so the queue redelivers the whole job.
type CascadeService struct {
	channels   ports.ChannelRepository
	questions  ports.QuestionRepository
	answers    ports.AnswerRepository
	events     ports.EventPublisher
	metrics    ports.MetricsEmitter
	maxBatches int
	logger     *zap.Logger
}

// NewCascadeService creates a new cascade deletion service.
// maxConcurrentBatches <= 0 selects the default bound.
func NewCascadeService(
	channels ports.ChannelRepository,
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	events ports.EventPublisher,
	metrics ports.MetricsEmitter,
	maxConcurrentBatches int,
	logger *zap.Logger,
) *CascadeService {
	if maxConcurrentBatches <= 0 {
		maxConcurrentBatches = defaultMaxConcurrentBatches
	}
	return &CascadeService{
		channels:   channels,
		questions:  questions,
		answers:    answers,
		events:     events,
		metrics:    metrics,
		maxBatches: maxConcurrentBatches,
		logger:     logger,
	}
}

// PurgeChannelQuestions consumes one purge job. The channel snapshot
// comes from the queue message; its counter is only a hint for the
// short-circuit, the question enumeration is authoritative.
func (s *CascadeService) PurgeChannelQuestions(ctx context.Context, channel *forum.Channel) error {
	log := s.logger.With(zap.String("channelId", channel.ChannelID))

	if channel.TotalQuestions == 0 {
		log.Info("no questions found, deletion skipped")
		return nil
	}

	questions, err := s.questions.ListAllByChannel(ctx, channel.ChannelID)
	if err != nil {
		log.Error("failed to enumerate questions", zap.Error(err))
		return appErrors.Wrap(err, "failed to enumerate questions")
	}
	if len(questions) == 0 {
		log.Info("channel has no stored questions, deletion skipped")
		return nil
	}

	var questionsDeleted, answersDeleted int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxBatches)
	for _, batch := range utils.Chunk(questions, ports.MaxBatchSize) {
		batch := batch
		g.Go(func() error {
			if err := s.purgeBatch(gctx, batch, &answersDeleted); err != nil {
				return err
			}
			atomic.AddInt64(&questionsDeleted, int64(len(batch)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Leave the counter untouched: a redelivered job re-enumerates
		// whatever survived this attempt.
		log.Error("channel purge failed, awaiting redelivery", zap.Error(err))
		return err
	}

	if err := s.channels.ResetTotalQuestions(ctx, channel.ChannelID); err != nil {
		log.Error("failed to reset question counter", zap.Error(err))
		return err
	}

	log.Info("channel questions purged",
		zap.Int64("questionsDeleted", atomic.LoadInt64(&questionsDeleted)),
		zap.Int64("answersDeleted", atomic.LoadInt64(&answersDeleted)),
	)

	// Completion event and metrics are best-effort; the purge itself is done.
	qd, ad := int(atomic.LoadInt64(&questionsDeleted)), int(atomic.LoadInt64(&answersDeleted))
	if err := s.events.PublishQuestionsPurged(ctx, channel.ChannelID, qd, ad); err != nil {
		log.Warn("failed to publish purge completion event", zap.Error(err))
	}
	s.metrics.RecordPurge(ctx, qd, ad)

	return nil
}

// purgeBatch clears the answers under every question in the batch, then
// deletes the questions themselves in one bounded call. Answer cleanup
// always precedes the owning question's deletion; across questions the
// cleanups run concurrently.
func (s *CascadeService) purgeBatch(ctx context.Context, batch []forum.Question, answersDeleted *int64) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, question := range batch {
		question := question
		g.Go(func() error {
			answers, err := s.answers.ListAllByQuestion(gctx, question.QuestionID)
			if err != nil {
				return err
			}
			if len(answers) == 0 {
				return nil
			}
			for _, chunk := range utils.Chunk(answers, ports.MaxBatchSize) {
				if err := s.answers.DeleteBatch(gctx, chunk); err != nil {
					return err
				}
			}
			atomic.AddInt64(answersDeleted, int64(len(answers)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return s.questions.DeleteBatch(ctx, batch)
}
