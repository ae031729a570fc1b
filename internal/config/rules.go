package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gbase-tools/chateval/internal/classify"
)

// LoadRulesConfig reads rules.yaml. The path can be overridden with
// CHATEVAL_RULES_PATH. A missing pattern list or threshold falls back
// to the built-in defaults; an explicitly present but invalid value is
// an error.
func LoadRulesConfig() (*RulesConfig, error) {
	path := os.Getenv("CHATEVAL_RULES_PATH")
	if path == "" {
		path = "configs/rules.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyRulesDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

func applyRulesDefaults(cfg *RulesConfig) {
	if cfg.ErrorPatterns == nil {
		cfg.ErrorPatterns = classify.DefaultErrorPatterns
	}
	if cfg.NotFoundPatterns == nil {
		cfg.NotFoundPatterns = classify.DefaultNotFoundPatterns
	}
	if cfg.FillerPhrases == nil {
		cfg.FillerPhrases = classify.DefaultFillerPhrases
	}
	if cfg.EvalThreshold == 0 {
		cfg.EvalThreshold = classify.DefaultEvalThreshold
	}
	if cfg.AnalyzeThreshold == 0 {
		cfg.AnalyzeThreshold = classify.DefaultAnalyzeThreshold
	}
}

func (c *RulesConfig) Validate() error {
	if c.EvalThreshold < 0 || c.AnalyzeThreshold < 0 {
		return fmt.Errorf("thresholds must be non-negative (eval=%d analyze=%d)", c.EvalThreshold, c.AnalyzeThreshold)
	}
	for _, p := range c.ErrorPatterns {
		if p == "" {
			return fmt.Errorf("empty error pattern")
		}
	}
	for _, p := range c.NotFoundPatterns {
		if p == "" {
			return fmt.Errorf("empty not_found pattern")
		}
	}
	for _, p := range c.FillerPhrases {
		if p == "" {
			return fmt.Errorf("empty filler phrase")
		}
	}
	return nil
}
