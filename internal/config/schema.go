package config

import (
	"github.com/gbase-tools/chateval/internal/category"
	"github.com/gbase-tools/chateval/internal/classify"
)

// RulesConfig is the on-disk shape of rules.yaml. Both thresholds live
// in one file so the evaluation bench and the log analyzer cannot
// drift apart on pattern sets.
type RulesConfig struct {
	ErrorPatterns    []string `yaml:"error_patterns"`
	NotFoundPatterns []string `yaml:"not_found_patterns"`
	FillerPhrases    []string `yaml:"filler_phrases"`
	EvalThreshold    int      `yaml:"eval_threshold"`
	AnalyzeThreshold int      `yaml:"analyze_threshold"`
}

// EvalRules materializes the rule set for the evaluation bench.
func (c *RulesConfig) EvalRules() classify.Rules {
	return c.rules(c.EvalThreshold)
}

// AnalyzeRules materializes the rule set for the log analyzer.
func (c *RulesConfig) AnalyzeRules() classify.Rules {
	return c.rules(c.AnalyzeThreshold)
}

func (c *RulesConfig) rules(threshold int) classify.Rules {
	return classify.Rules{
		ErrorPatterns:    c.ErrorPatterns,
		NotFoundPatterns: c.NotFoundPatterns,
		FillerPhrases:    c.FillerPhrases,
		FillerThreshold:  threshold,
	}
}

// CategoriesConfig is the on-disk shape of categories.yaml: the general
// table shared by every client, plus an optional industry table for the
// subcategory tier.
type CategoriesConfig struct {
	General  category.Table  `yaml:"general"`
	Industry *category.Table `yaml:"industry"`
}

// caseEntry is one test case in cases.yaml. The flat question field and
// the promptfoo-style vars.user_input shape are both accepted, since
// existing case files use either.
type caseEntry struct {
	Description string `yaml:"description"`
	Question    string `yaml:"question"`
	Category    string `yaml:"category"`
	Vars        struct {
		UserInput string `yaml:"user_input"`
	} `yaml:"vars"`
	Metadata struct {
		Category string `yaml:"category"`
	} `yaml:"metadata"`
}
