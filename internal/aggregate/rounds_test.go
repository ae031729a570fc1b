package aggregate

import (
	"testing"

	"github.com/gbase-tools/chateval/internal/models"
)

func roundOf(label string, bot1, bot2 []models.ClassifiedCase) models.Round {
	return models.Round{
		Label: label,
		Bot1:  models.CaseSet{Results: bot1},
		Bot2:  models.CaseSet{Results: bot2},
	}
}

func TestCompareRounds_Empty(t *testing.T) {
	if _, err := CompareRounds(nil); err == nil {
		t.Error("expected ErrNoRounds for empty input")
	}
}

func TestCompareRounds_ImprovedRow(t *testing.T) {
	a := roundOf("第1回",
		[]models.ClassifiedCase{mkCase("hours", "営業時間?", models.OutcomeNotFound, 0)},
		nil)
	b := roundOf("第2回",
		[]models.ClassifiedCase{mkCase("hours", "営業時間?", models.OutcomeAnswered, 0)},
		nil)

	trend, err := CompareRounds([]models.Round{a, b})
	if err != nil {
		t.Fatal(err)
	}

	if len(trend.Changes) != 1 {
		t.Fatalf("expected exactly 1 change row, got %d", len(trend.Changes))
	}
	change := trend.Changes[0]
	if change.Direction != models.ChangeImproved {
		t.Errorf("direction = %s, want improved", change.Direction)
	}
	if change.Category != "hours" || change.Question != "営業時間?" {
		t.Errorf("change key = (%s, %s)", change.Category, change.Question)
	}
	if change.Before != models.OutcomeNotFound || change.After != models.OutcomeAnswered {
		t.Errorf("transition = %s → %s", change.Before, change.After)
	}
}

func TestCompareRounds_UnchangedOmitted(t *testing.T) {
	a := roundOf("r1", []models.ClassifiedCase{
		mkCase("shops", "q1", models.OutcomeAnswered, 0),
		mkCase("shops", "q2", models.OutcomeEmpty, 0),
	}, nil)
	b := roundOf("r2", []models.ClassifiedCase{
		mkCase("shops", "q1", models.OutcomeAnswered, 0),
		// empty → error stays inside the failure tier; no row.
		mkCase("shops", "q2", models.OutcomeError, 0),
	}, nil)

	trend, err := CompareRounds([]models.Round{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if len(trend.Changes) != 0 {
		t.Errorf("expected no change rows, got %+v", trend.Changes)
	}
}

func TestCompareRounds_Regressed(t *testing.T) {
	a := roundOf("r1", []models.ClassifiedCase{mkCase("shops", "q", models.OutcomeAnswered, 0)}, nil)
	b := roundOf("r2", []models.ClassifiedCase{mkCase("shops", "q", models.OutcomeFillerOnly, 0)}, nil)

	trend, err := CompareRounds([]models.Round{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if len(trend.Changes) != 1 || trend.Changes[0].Direction != models.ChangeRegressed {
		t.Errorf("changes = %+v, want one regressed row", trend.Changes)
	}
}

func TestCompareRounds_JoinByIdentityNotPosition(t *testing.T) {
	a := roundOf("r1", []models.ClassifiedCase{
		mkCase("shops", "q1", models.OutcomeAnswered, 0),
		mkCase("hours", "q2", models.OutcomeEmpty, 0),
	}, nil)
	// Same logical cases, reordered and with a new question appended.
	b := roundOf("r2", []models.ClassifiedCase{
		mkCase("hours", "q2", models.OutcomeAnswered, 0),
		mkCase("shops", "q1", models.OutcomeAnswered, 0),
		mkCase("events", "q3", models.OutcomeAnswered, 0),
	}, nil)

	trend, err := CompareRounds([]models.Round{a, b})
	if err != nil {
		t.Fatal(err)
	}

	if len(trend.Changes) != 1 {
		t.Fatalf("expected 1 change row, got %d", len(trend.Changes))
	}
	if trend.Changes[0].Question != "q2" || trend.Changes[0].Direction != models.ChangeImproved {
		t.Errorf("unexpected change row: %+v", trend.Changes[0])
	}
}

func TestCompareRounds_BothBots(t *testing.T) {
	a := roundOf("r1",
		[]models.ClassifiedCase{mkCase("a", "q", models.OutcomeEmpty, 0)},
		[]models.ClassifiedCase{mkCase("a", "q", models.OutcomeAnswered, 0)})
	b := roundOf("r2",
		[]models.ClassifiedCase{mkCase("a", "q", models.OutcomeAnswered, 0)},
		[]models.ClassifiedCase{mkCase("a", "q", models.OutcomeError, 0)})

	trend, err := CompareRounds([]models.Round{a, b})
	if err != nil {
		t.Fatal(err)
	}

	if len(trend.Rounds) != 2 {
		t.Errorf("round summaries = %d, want 2", len(trend.Rounds))
	}
	if len(trend.Changes) != 2 {
		t.Fatalf("expected 2 change rows (one per bot), got %d", len(trend.Changes))
	}

	byBot := map[string]models.ChangeDirection{}
	for _, c := range trend.Changes {
		byBot[c.Bot] = c.Direction
	}
	if byBot["bot1"] != models.ChangeImproved || byBot["bot2"] != models.ChangeRegressed {
		t.Errorf("directions by bot = %v", byBot)
	}
}

func TestCompareRounds_ThreeRoundsChainConsecutively(t *testing.T) {
	mk := func(o models.Outcome) []models.ClassifiedCase {
		return []models.ClassifiedCase{mkCase("a", "q", o, 0)}
	}
	rounds := []models.Round{
		roundOf("r1", mk(models.OutcomeEmpty), nil),
		roundOf("r2", mk(models.OutcomeAnswered), nil),
		roundOf("r3", mk(models.OutcomeEmpty), nil),
	}

	trend, err := CompareRounds(rounds)
	if err != nil {
		t.Fatal(err)
	}

	// r1→r2 improved, r2→r3 regressed. No r1→r3 pairing.
	if len(trend.Changes) != 2 {
		t.Fatalf("expected 2 change rows, got %d", len(trend.Changes))
	}
	if trend.Changes[0].FromRound != "r1" || trend.Changes[0].ToRound != "r2" {
		t.Errorf("first change pairs %s→%s", trend.Changes[0].FromRound, trend.Changes[0].ToRound)
	}
	if trend.Changes[1].FromRound != "r2" || trend.Changes[1].ToRound != "r3" {
		t.Errorf("second change pairs %s→%s", trend.Changes[1].FromRound, trend.Changes[1].ToRound)
	}
}
