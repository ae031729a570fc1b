package classify

import (
	"testing"

	"github.com/gbase-tools/chateval/internal/models"
)

func TestClassify_EmptyPrecedence(t *testing.T) {
	c := New(DefaultEvalRules())

	for _, reply := range []string{"", "   ", "\n\t", "  \r\n  "} {
		if got := c.Classify(reply); got != models.OutcomeEmpty {
			t.Errorf("Classify(%q) = %s, want empty", reply, got)
		}
	}
}

func TestClassify_PriorityErrorBeatsNotFound(t *testing.T) {
	c := New(DefaultEvalRules())

	// Contains both an error pattern and a not-found pattern; the rule
	// chain must resolve to error.
	reply := "システムエラーのため、情報が見つかりませんでした。"
	if got := c.Classify(reply); got != models.OutcomeError {
		t.Errorf("Classify(%q) = %s, want error", reply, got)
	}
}

func TestClassify_NotFound(t *testing.T) {
	c := New(DefaultEvalRules())

	replies := []string{
		"申し訳ございませんが、該当する情報はありません。",
		"お探しの内容は見つかりませんでした。",
		"そのご質問にはお答えできません。",
	}
	for _, reply := range replies {
		if got := c.Classify(reply); got != models.OutcomeNotFound {
			t.Errorf("Classify(%q) = %s, want not_found", reply, got)
		}
	}
}

func TestClassify_ErrorCaseInsensitive(t *testing.T) {
	c := New(DefaultEvalRules())

	if got := c.Classify("Internal Server Error"); got != models.OutcomeError {
		t.Errorf("Classify(Internal Server Error) = %s, want error", got)
	}
	if got := c.Classify("Something Went Wrong. Please retry."); got != models.OutcomeError {
		t.Errorf("expected error outcome, got %s", got)
	}
}

func TestClassify_FillerThresholdBoundary(t *testing.T) {
	rules := Rules{
		FillerPhrases:   []string{"お調べいたします"},
		FillerThreshold: 5,
	}
	c := New(rules)

	if got := c.Classify("お調べいたします。"); got != models.OutcomeFillerOnly {
		t.Errorf("filler-only reply classified as %s", got)
	}

	// Post-strip remainder is long enough to count as a real answer.
	if got := c.Classify("お調べいたします。営業時間は10時です。"); got != models.OutcomeAnswered {
		t.Errorf("substantive reply classified as %s", got)
	}
}

func TestClassify_AnalyzeThresholdIsStricter(t *testing.T) {
	short := "10時開店です"

	eval := New(DefaultEvalRules())
	if got := eval.Classify(short); got != models.OutcomeAnswered {
		t.Errorf("eval rules: Classify(%q) = %s, want answered", short, got)
	}

	analyze := New(DefaultAnalyzeRules())
	if got := analyze.Classify(short); got != models.OutcomeFillerOnly {
		t.Errorf("analyze rules: Classify(%q) = %s, want filler_only", short, got)
	}
}

func TestClassify_Answered(t *testing.T) {
	c := New(DefaultEvalRules())

	reply := "ニュウマン高輪の営業時間は10:00〜20:00です。レストランフロアは22:00まで営業しています。"
	if got := c.Classify(reply); got != models.OutcomeAnswered {
		t.Errorf("Classify(answer) = %s, want answered", got)
	}
}

func TestClassify_Totality(t *testing.T) {
	c := New(DefaultEvalRules())

	// Every input must resolve to exactly one valid label, including
	// strings that hit several pattern types at once.
	inputs := []string{
		"",
		" ",
		"。。。",
		"true",
		"nonclarificationtruetrue",
		"エラーが発生し、見つかりませんでした。お調べいたします",
		"お調べいたします確認いたします少々お待ち",
		"普通の回答です。南館3階にございます。",
		"🙂👍",
		"\x00\x01binary-ish",
	}
	for _, reply := range inputs {
		got := c.Classify(reply)
		if !got.Valid() {
			t.Errorf("Classify(%q) produced invalid outcome %q", reply, got)
		}
	}
}

func TestClassify_RuleOrderIsFixed(t *testing.T) {
	c := New(DefaultEvalRules())

	want := []models.Outcome{
		models.OutcomeEmpty,
		models.OutcomeError,
		models.OutcomeNotFound,
		models.OutcomeFillerOnly,
	}
	if len(c.chain) != len(want) {
		t.Fatalf("expected %d chained rules, got %d", len(want), len(c.chain))
	}
	for i, r := range c.chain {
		if r.outcome != want[i] {
			t.Errorf("rule %d is %s, want %s", i, r.outcome, want[i])
		}
	}
}
