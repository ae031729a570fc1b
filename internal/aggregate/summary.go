// Package aggregate reduces classified case records into summary
// statistics. Summaries are pure functions of their input CaseSet and
// are recomputed on demand, never persisted or mutated.
package aggregate

import (
	"sort"
	"time"

	"github.com/gbase-tools/chateval/internal/models"
)

// Summarize partitions cases by outcome, category and answer source and
// computes rates. An empty input is valid and yields a summary with
// total=0 and every rate at 0; zero denominators never produce NaN or
// a panic.
func Summarize(cases []models.ClassifiedCase) models.AggregateSummary {
	summary := models.AggregateSummary{
		Total:      len(cases),
		Categories: make(map[string]models.CategoryStats),
		Sources:    make(map[models.AnswerSource]int),
	}

	var durations []time.Duration

	for _, c := range cases {
		switch c.Outcome {
		case models.OutcomeEmpty:
			summary.Outcomes.Empty++
		case models.OutcomeError:
			summary.Outcomes.Error++
		case models.OutcomeNotFound:
			summary.Outcomes.NotFound++
		case models.OutcomeFillerOnly:
			summary.Outcomes.FillerOnly++
		case models.OutcomeAnswered:
			summary.Outcomes.Answered++
		}

		if c.Outcome.RAGSuccess() {
			summary.RAGSuccessCount++
		} else {
			summary.RAGFailureCount++
		}

		stats := summary.Categories[c.Category]
		stats.Total++
		if c.Outcome == models.OutcomeAnswered {
			stats.Answered++
		} else {
			stats.Unanswered++
		}
		stats.AnswerRate = percent(stats.Answered, stats.Total)
		summary.Categories[c.Category] = stats

		if c.Source != "" {
			summary.Sources[c.Source]++
		}

		// Synthesized error records carry no duration and are excluded
		// from time statistics, but still count everywhere else.
		if c.Elapsed > 0 {
			durations = append(durations, c.Elapsed)
		}
	}

	summary.AnswerRate = percent(summary.Outcomes.Answered, summary.Total)
	summary.RAGSuccessRate = percent(summary.RAGSuccessCount, summary.Total)
	summary.Times = timeStats(durations)

	return summary
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func timeStats(durations []time.Duration) models.TimeStats {
	stats := models.TimeStats{Count: len(durations)}
	if len(durations) == 0 {
		return stats
	}

	sorted := append([]time.Duration(nil), durations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}
	stats.Mean = sum / time.Duration(len(sorted))
	stats.P50 = percentile(sorted, 50)
	stats.P90 = percentile(sorted, 90)
	return stats
}

// percentile uses nearest-rank on an already sorted slice.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}
