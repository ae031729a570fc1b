package aggregate

import (
	"errors"

	"github.com/gbase-tools/chateval/internal/models"
)

// ErrNoRounds is returned when CompareRounds is called with an empty
// round list.
var ErrNoRounds = errors.New("no rounds to compare")

// caseKey is the cross-round identity of a logical question. Position is
// deliberately not part of it: case lists may be reordered or extended
// between rounds.
type caseKey struct {
	category string
	question string
}

// CompareRounds summarizes each round per bot and builds the
// per-question status-change table across consecutive rounds. Outcomes
// rank answered > not_found > {empty, filler_only, error}: a row is
// "improved" when its rank rose between rounds, "regressed" when it
// fell. Rows whose rank is unchanged are omitted, so empty→error never
// shows up but not_found→answered does.
func CompareRounds(rounds []models.Round) (models.TrendSummary, error) {
	if len(rounds) == 0 {
		return models.TrendSummary{}, ErrNoRounds
	}

	trend := models.TrendSummary{
		Rounds: make([]models.RoundSummary, 0, len(rounds)),
	}

	for _, round := range rounds {
		trend.Rounds = append(trend.Rounds, models.RoundSummary{
			Label: round.Label,
			Date:  round.Date,
			Bot1:  Summarize(round.Bot1.Results),
			Bot2:  Summarize(round.Bot2.Results),
		})
	}

	for i := 1; i < len(rounds); i++ {
		prev, curr := rounds[i-1], rounds[i]
		trend.Changes = append(trend.Changes,
			statusChanges(prev.Label, curr.Label, "bot1", prev.Bot1.Results, curr.Bot1.Results)...)
		trend.Changes = append(trend.Changes,
			statusChanges(prev.Label, curr.Label, "bot2", prev.Bot2.Results, curr.Bot2.Results)...)
	}

	return trend, nil
}

func rank(o models.Outcome) int {
	switch o {
	case models.OutcomeAnswered:
		return 2
	case models.OutcomeNotFound:
		return 1
	default:
		return 0
	}
}

func statusChanges(fromLabel, toLabel, bot string, before, after []models.ClassifiedCase) []models.StatusChange {
	prev := make(map[caseKey]models.Outcome, len(before))
	for _, c := range before {
		prev[caseKey{c.Category, c.Question}] = c.Outcome
	}

	var changes []models.StatusChange
	for _, c := range after {
		old, ok := prev[caseKey{c.Category, c.Question}]
		if !ok {
			continue
		}

		var direction models.ChangeDirection
		switch {
		case rank(c.Outcome) > rank(old):
			direction = models.ChangeImproved
		case rank(c.Outcome) < rank(old):
			direction = models.ChangeRegressed
		default:
			continue
		}

		changes = append(changes, models.StatusChange{
			FromRound: fromLabel,
			ToRound:   toLabel,
			Bot:       bot,
			Category:  c.Category,
			Question:  c.Question,
			Before:    old,
			After:     c.Outcome,
			Direction: direction,
		})
	}
	return changes
}
