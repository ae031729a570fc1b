package runner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/gbase-tools/chateval/internal/classify"
	"github.com/gbase-tools/chateval/internal/models"
	"github.com/gbase-tools/chateval/internal/runner"
	"github.com/gbase-tools/chateval/internal/runner/mocks"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func testCases() []models.TestCase {
	return []models.TestCase{
		{Description: "case-001", Question: "営業時間は?", Category: "hours"},
		{Description: "case-002", Question: "駐車場はありますか", Category: "facility"},
		{Description: "case-003", Question: "ATMはどこですか", Category: "facility"},
	}
}

func TestRun_AllCasesClassified(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := mocks.NewMockReplyProducer(ctrl)
	producer.EXPECT().
		Produce(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&runner.Reply{Answer: "10:00から20:00まで営業しています。", Source: models.SourceRAG}, nil).
		Times(3)

	r := runner.New(producer, classify.New(classify.DefaultEvalRules()),
		runner.Options{BotID: "bot-1"}, newTestLogger())

	set := r.Run(context.Background(), testCases())

	if len(set.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(set.Results))
	}
	if set.Meta.TotalCases != 3 || set.Meta.BotID != "bot-1" {
		t.Errorf("meta = %+v", set.Meta)
	}
	for i, rec := range set.Results {
		if rec.Outcome != models.OutcomeAnswered {
			t.Errorf("result %d outcome = %s, want answered", i, rec.Outcome)
		}
		if rec.Elapsed <= 0 {
			t.Errorf("result %d has no recorded duration", i)
		}
	}
}

func TestRun_FailureIsIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cases := testCases()
	producer := mocks.NewMockReplyProducer(ctrl)

	ok := &runner.Reply{Answer: "南館1階にございます。", Source: models.SourceRAG}
	producer.EXPECT().Produce(gomock.Any(), cases[0].Question, gomock.Any()).Return(ok, nil)
	producer.EXPECT().Produce(gomock.Any(), cases[1].Question, gomock.Any()).
		Return(nil, errors.New("connection reset"))
	producer.EXPECT().Produce(gomock.Any(), cases[2].Question, gomock.Any()).Return(ok, nil)

	r := runner.New(producer, classify.New(classify.DefaultEvalRules()),
		runner.Options{BotID: "bot-1"}, newTestLogger())

	set := r.Run(context.Background(), cases)

	// The run completes with exactly the input case count; the failure
	// shows up as an error row, not a missing row.
	if len(set.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(set.Results))
	}

	failed := set.Results[1]
	if failed.Outcome != models.OutcomeError {
		t.Errorf("failed case outcome = %s, want error", failed.Outcome)
	}
	if failed.FailureCause != "connection reset" {
		t.Errorf("failure cause = %q", failed.FailureCause)
	}
	if failed.Elapsed != 0 {
		t.Errorf("synthesized record must not carry a duration, got %s", failed.Elapsed)
	}
	if set.Results[0].Outcome != models.OutcomeAnswered || set.Results[2].Outcome != models.OutcomeAnswered {
		t.Error("neighbouring cases affected by the failure")
	}
}

func TestRun_FreshSessionPerCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	seen := make(map[string]bool)
	producer := mocks.NewMockReplyProducer(ctrl)
	producer.EXPECT().
		Produce(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, sessionID string) (*runner.Reply, error) {
			if sessionID == "" {
				t.Error("empty session id")
			}
			if seen[sessionID] {
				t.Errorf("session id %s reused across cases", sessionID)
			}
			seen[sessionID] = true
			return &runner.Reply{Answer: "回答です、営業時間は10時からです。"}, nil
		}).
		Times(3)

	r := runner.New(producer, classify.New(classify.DefaultEvalRules()),
		runner.Options{}, newTestLogger())
	r.Run(context.Background(), testCases())
}

func TestRun_TimeoutBecomesErrorRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := mocks.NewMockReplyProducer(ctrl)
	producer.EXPECT().
		Produce(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ string) (*runner.Reply, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	r := runner.New(producer, classify.New(classify.DefaultEvalRules()),
		runner.Options{Timeout: 10 * time.Millisecond}, newTestLogger())

	set := r.Run(context.Background(), testCases()[:1])

	if set.Results[0].Outcome != models.OutcomeError {
		t.Errorf("outcome = %s, want error", set.Results[0].Outcome)
	}
}

func TestRun_PoolPreservesInputOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := mocks.NewMockReplyProducer(ctrl)
	producer.EXPECT().
		Produce(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, question string, _ string) (*runner.Reply, error) {
			return &runner.Reply{Answer: "回答: " + question + " について営業時間は10時からです。"}, nil
		}).
		AnyTimes()

	cases := testCases()
	r := runner.New(producer, classify.New(classify.DefaultEvalRules()),
		runner.Options{Workers: 3}, newTestLogger())

	set := r.Run(context.Background(), cases)

	if len(set.Results) != len(cases) {
		t.Fatalf("got %d results, want %d", len(set.Results), len(cases))
	}
	for i, rec := range set.Results {
		if rec.Question != cases[i].Question {
			t.Errorf("result %d is %q, want %q (order not preserved)", i, rec.Question, cases[i].Question)
		}
		if rec.Index != i+1 {
			t.Errorf("result %d carries index %d", i, rec.Index)
		}
	}
}

func TestRun_EmptyCaseList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := mocks.NewMockReplyProducer(ctrl)
	r := runner.New(producer, classify.New(classify.DefaultEvalRules()),
		runner.Options{BotID: "bot-1"}, newTestLogger())

	set := r.Run(context.Background(), nil)
	if len(set.Results) != 0 || set.Meta.TotalCases != 0 {
		t.Errorf("expected empty case set, got %+v", set)
	}
}
