package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/gbase-tools/chateval/internal/models"
)

// Rules configures the outcome classifier. Error and not-found matching
// is case-insensitive substring search; filler phrases are matched
// exactly as authored. FillerThreshold is the rune count below which the
// post-strip remainder counts as filler_only. The evaluation harness
// and the log analyzer use different values, so it stays a parameter.
type Rules struct {
	ErrorPatterns    []string `yaml:"error_patterns"`
	NotFoundPatterns []string `yaml:"not_found_patterns"`
	FillerPhrases    []string `yaml:"filler_phrases"`
	FillerThreshold  int      `yaml:"filler_threshold"`
}

type rule struct {
	outcome models.Outcome
	match   func(reply string) bool
}

// Classifier assigns exactly one Outcome to any reply string. The rule
// chain is an ordered list evaluated first-match-wins: empty, error,
// not_found, filler_only, with answered as the fallthrough. Order
// matters: an error message often has no real content and would
// otherwise also match filler_only.
type Classifier struct {
	rules    Rules
	lowered  loweredPatterns
	chain    []rule
}

type loweredPatterns struct {
	errors   []string
	notFound []string
}

// New builds a Classifier from rules. A zero FillerThreshold disables
// the filler_only rule in effect, since no remainder is shorter than 0.
func New(rules Rules) *Classifier {
	c := &Classifier{
		rules: rules,
		lowered: loweredPatterns{
			errors:   lowerAll(rules.ErrorPatterns),
			notFound: lowerAll(rules.NotFoundPatterns),
		},
	}
	c.chain = []rule{
		{models.OutcomeEmpty, c.isEmpty},
		{models.OutcomeError, c.hasError},
		{models.OutcomeNotFound, c.hasNotFound},
		{models.OutcomeFillerOnly, c.isFillerOnly},
	}
	return c
}

// FillerPhrases returns the filler phrase set the classifier strips
// before the length check.
func (c *Classifier) FillerPhrases() []string {
	return c.rules.FillerPhrases
}

// Classify maps a reply to its Outcome. Total and pure: every string
// input, including empty and whitespace-only, resolves to one label.
func (c *Classifier) Classify(reply string) models.Outcome {
	for _, r := range c.chain {
		if r.match(reply) {
			return r.outcome
		}
	}
	return models.OutcomeAnswered
}

func (c *Classifier) isEmpty(reply string) bool {
	return strings.TrimSpace(reply) == ""
}

func (c *Classifier) hasError(reply string) bool {
	return containsAny(reply, c.lowered.errors)
}

func (c *Classifier) hasNotFound(reply string) bool {
	return containsAny(reply, c.lowered.notFound)
}

func (c *Classifier) isFillerOnly(reply string) bool {
	remainder := StripBoilerplate(reply, c.rules.FillerPhrases)
	return utf8.RuneCountInString(remainder) < c.rules.FillerThreshold
}

func containsAny(text string, loweredPatterns []string) bool {
	lowered := strings.ToLower(text)
	for _, p := range loweredPatterns {
		if p != "" && strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

func lowerAll(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = strings.ToLower(p)
	}
	return out
}
