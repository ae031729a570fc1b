package models

import (
	"time"
)

// Outcome is the label assigned to one chatbot reply. The set is closed;
// the classifier guarantees every reply maps to exactly one of these.
type Outcome string

const (
	OutcomeEmpty      Outcome = "empty"
	OutcomeError      Outcome = "error"
	OutcomeNotFound   Outcome = "not_found"
	OutcomeFillerOnly Outcome = "filler_only"
	OutcomeAnswered   Outcome = "answered"
)

// RAGSuccess reports whether the retrieval pipeline completed normally.
// A not_found reply still counts as success: the pipeline ran, it just
// found nothing relevant.
func (o Outcome) RAGSuccess() bool {
	return o == OutcomeAnswered || o == OutcomeNotFound
}

// Valid reports whether o is one of the closed outcome labels.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeEmpty, OutcomeError, OutcomeNotFound, OutcomeFillerOnly, OutcomeAnswered:
		return true
	}
	return false
}

// AnswerSource tags where a reply was produced from, when derivable.
type AnswerSource string

const (
	SourceRAG     AnswerSource = "rag"
	SourceFAQ     AnswerSource = "faq"
	SourceUnknown AnswerSource = "unknown"
	SourceError   AnswerSource = "error"
)

// TestCase is one entry of the fixed question set sent to a bot.
// Identity across rounds is (Category, Question), so keep both verbatim.
type TestCase struct {
	Description string `json:"description" yaml:"description"`
	Question    string `json:"question" yaml:"question"`
	Category    string `json:"category" yaml:"category"`
}

// ClassifiedCase is the write-once record for one executed test case or
// one ingested log row.
type ClassifiedCase struct {
	Index        int          `json:"index"`
	Description  string       `json:"description,omitempty"`
	Category     string       `json:"category"`
	Question     string       `json:"question"`
	Answer       string       `json:"answer"`
	Outcome      Outcome      `json:"outcome"`
	Source       AnswerSource `json:"source,omitempty"`
	MessageID    string       `json:"message_id,omitempty"`
	FailureCause string       `json:"failure_cause,omitempty"`
	// Elapsed is zero for synthesized error records; the aggregator
	// excludes those from time statistics.
	Elapsed   time.Duration `json:"elapsed_ns"`
	Timestamp time.Time     `json:"timestamp"`
}

// Meta is the CaseSet header.
type Meta struct {
	BotID      string    `json:"bot_id"`
	CasesFile  string    `json:"cases_file,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	TotalCases int       `json:"total_cases"`
}

// CaseSet is the full ordered result of one evaluation run (or one
// log-analysis period) for one bot/environment. Immutable once produced.
type CaseSet struct {
	Meta    Meta             `json:"meta"`
	Results []ClassifiedCase `json:"results"`
}

// Round is one comparison period: paired CaseSets for the two compared
// bots/environments.
type Round struct {
	Label string  `json:"label"`
	Date  string  `json:"date"`
	Bot1  CaseSet `json:"bot1"`
	Bot2  CaseSet `json:"bot2"`
}

// OutcomeCounts holds per-outcome counts for one CaseSet.
type OutcomeCounts struct {
	Empty      int `json:"empty"`
	Error      int `json:"error"`
	NotFound   int `json:"not_found"`
	FillerOnly int `json:"filler_only"`
	Answered   int `json:"answered"`
}

// CategoryStats is the per-category breakdown.
type CategoryStats struct {
	Total      int     `json:"total"`
	Answered   int     `json:"answered"`
	Unanswered int     `json:"unanswered"`
	AnswerRate float64 `json:"answer_rate"`
}

// TimeStats covers cases that recorded a duration.
type TimeStats struct {
	Count int           `json:"count"`
	Mean  time.Duration `json:"mean_ns"`
	P50   time.Duration `json:"p50_ns"`
	P90   time.Duration `json:"p90_ns"`
}

// AggregateSummary is derived from a CaseSet on demand, never persisted
// independently of its source.
type AggregateSummary struct {
	Total           int                      `json:"total"`
	Outcomes        OutcomeCounts            `json:"outcomes"`
	AnswerRate      float64                  `json:"answer_rate"`
	RAGSuccessCount int                      `json:"rag_success_count"`
	RAGFailureCount int                      `json:"rag_failure_count"`
	RAGSuccessRate  float64                  `json:"rag_success_rate"`
	Categories      map[string]CategoryStats `json:"categories"`
	Sources         map[AnswerSource]int     `json:"sources"`
	Times           TimeStats                `json:"times"`
}

// ChangeDirection classifies a per-question outcome transition between
// consecutive rounds.
type ChangeDirection string

const (
	ChangeImproved  ChangeDirection = "improved"
	ChangeRegressed ChangeDirection = "regressed"
)

// StatusChange is one row of the per-question status-change table.
type StatusChange struct {
	FromRound string          `json:"from_round"`
	ToRound   string          `json:"to_round"`
	Bot       string          `json:"bot"`
	Category  string          `json:"category"`
	Question  string          `json:"question"`
	Before    Outcome         `json:"before"`
	After     Outcome         `json:"after"`
	Direction ChangeDirection `json:"direction"`
}

// RoundSummary pairs the two per-bot summaries of one round.
type RoundSummary struct {
	Label string           `json:"label"`
	Date  string           `json:"date"`
	Bot1  AggregateSummary `json:"bot1"`
	Bot2  AggregateSummary `json:"bot2"`
}

// TrendSummary is the cross-round comparison output.
type TrendSummary struct {
	Rounds  []RoundSummary `json:"rounds"`
	Changes []StatusChange `json:"changes"`
}

// Feedback is the normalized user-feedback value of a log row.
type Feedback string

const (
	FeedbackGood Feedback = "good"
	FeedbackBad  Feedback = "bad"
	FeedbackNone Feedback = "-"
)

// LogRow is one normalized chat-log record as delivered by the tabular
// log source. Encoding and column-name variation are resolved upstream.
type LogRow struct {
	Timestamp   time.Time `json:"timestamp"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Feedback    Feedback  `json:"feedback"`
	SessionID   string    `json:"session_id"`
	UserID      string    `json:"user_id,omitempty"`
	Transferred bool      `json:"transferred_to_human,omitempty"`
}
