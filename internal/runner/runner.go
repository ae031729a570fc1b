// Package runner executes a fixed test-case list against a
// reply-producing chatbot backend and collects one classified record per
// case. A case failure is isolated and recorded, never fatal to the run:
// the output CaseSet always has exactly as many records as input cases.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gbase-tools/chateval/internal/classify"
	"github.com/gbase-tools/chateval/internal/models"
)

// Reply is one complete bot response with its out-of-band metadata.
type Reply struct {
	Answer    string
	Source    models.AnswerSource
	MessageID string
}

// ReplyProducer is the external chatbot collaborator. It is treated as
// untrusted and possibly slow: the runner bounds every call with its own
// timeout context.
type ReplyProducer interface {
	Produce(ctx context.Context, question string, sessionID string) (*Reply, error)
}

// Options configures one evaluation run.
type Options struct {
	BotID     string
	CasesFile string
	// Delay between successive invocations, a rate-limit courtesy to
	// the external service.
	Delay   time.Duration
	Timeout time.Duration
	// Workers > 1 enables a bounded pool; results are still returned in
	// input case order.
	Workers int
}

type Runner struct {
	producer   ReplyProducer
	classifier *classify.Classifier
	opts       Options
	logger     *zerolog.Logger
}

func New(producer ReplyProducer, classifier *classify.Classifier, opts Options, logger *zerolog.Logger) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{
		producer:   producer,
		classifier: classifier,
		opts:       opts,
		logger:     logger,
	}
}

// Run executes all cases in input order and returns the complete
// CaseSet. Individual timeouts and transport failures are recorded as
// error-outcome rows with their cause.
func (r *Runner) Run(ctx context.Context, cases []models.TestCase) *models.CaseSet {
	set := &models.CaseSet{
		Meta: models.Meta{
			BotID:      r.opts.BotID,
			CasesFile:  r.opts.CasesFile,
			Timestamp:  time.Now(),
			TotalCases: len(cases),
		},
		Results: make([]models.ClassifiedCase, len(cases)),
	}

	if r.opts.Workers > 1 {
		r.runPool(ctx, cases, set.Results)
	} else {
		r.runSequential(ctx, cases, set.Results)
	}

	return set
}

func (r *Runner) runSequential(ctx context.Context, cases []models.TestCase, results []models.ClassifiedCase) {
	for i, tc := range cases {
		results[i] = r.execute(ctx, i, tc)
		if i < len(cases)-1 {
			r.pause(ctx)
		}
	}
}

// runPool fans cases out to a bounded worker pool. Each result lands at
// its input index, so aggregation and the cross-round join see the same
// ordering as the sequential path.
func (r *Runner) runPool(ctx context.Context, cases []models.TestCase, results []models.ClassifiedCase) {
	type job struct {
		index int
		tc    models.TestCase
	}

	jobs := make(chan job)
	var wg sync.WaitGroup

	for w := 0; w < r.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = r.execute(ctx, j.index, j.tc)
			}
		}()
	}

	for i, tc := range cases {
		jobs <- job{index: i, tc: tc}
		if i < len(cases)-1 {
			r.pause(ctx)
		}
	}
	close(jobs)
	wg.Wait()
}

func (r *Runner) execute(ctx context.Context, index int, tc models.TestCase) models.ClassifiedCase {
	record := models.ClassifiedCase{
		Index:       index + 1,
		Description: tc.Description,
		Category:    tc.Category,
		Question:    tc.Question,
		Timestamp:   time.Now(),
	}

	// Fresh session per case: no conversational context may leak
	// between cases.
	sessionID := uuid.NewString()

	callCtx := ctx
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := r.producer.Produce(callCtx, tc.Question, sessionID)
	elapsed := time.Since(start)

	if err != nil {
		r.logger.Warn().
			Err(err).
			Int("case", record.Index).
			Str("question", tc.Question).
			Msg("reply producer failed, recording error outcome")
		record.Outcome = models.OutcomeError
		record.Source = models.SourceError
		record.FailureCause = err.Error()
		return record
	}

	record.Answer = reply.Answer
	record.Source = reply.Source
	record.MessageID = reply.MessageID
	record.Outcome = r.classifier.Classify(reply.Answer)
	record.Elapsed = elapsed

	r.logger.Info().
		Int("case", record.Index).
		Str("outcome", string(record.Outcome)).
		Str("source", string(record.Source)).
		Dur("elapsed", elapsed).
		Msg("case classified")

	return record
}

func (r *Runner) pause(ctx context.Context) {
	if r.opts.Delay <= 0 {
		return
	}
	timer := time.NewTimer(r.opts.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
