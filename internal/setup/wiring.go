package setup

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gbase-tools/chateval/internal/analyze"
	"github.com/gbase-tools/chateval/internal/category"
	"github.com/gbase-tools/chateval/internal/classify"
	"github.com/gbase-tools/chateval/internal/config"
	"github.com/gbase-tools/chateval/internal/gbase"
	"github.com/gbase-tools/chateval/internal/runner"
)

type Config struct {
	APIBaseURL  string
	APIToken    string
	BotID       string
	Delay       time.Duration
	Timeout     time.Duration
	Workers     int
	RedisAddr   string
	RedisStream string
	RedisGroup  string
}

type Dependencies struct {
	EvalClassifier    *classify.Classifier
	AnalyzeClassifier *classify.Classifier
	Categories        *category.Classifier
	Analyzer          *analyze.Analyzer
	Logger            *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		APIBaseURL:  getEnv("GBASE_API_URL", gbase.DefaultBaseURL),
		APIToken:    getEnv("GBASE_API_TOKEN", ""),
		BotID:       getEnv("GBASE_BOT_ID", ""),
		Delay:       getEnvDuration("CHATEVAL_DELAY", time.Second),
		Timeout:     getEnvDuration("CHATEVAL_TIMEOUT", 60*time.Second),
		Workers:     getEnvInt("CHATEVAL_WORKERS", 1),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisStream: getEnv("REDIS_STREAM", "chat-events"),
		RedisGroup:  getEnv("REDIS_GROUP", "chateval"),
	}
}

// Wire loads the rule and category configuration and builds the shared
// classification dependencies.
func Wire(logger *zerolog.Logger) (*Dependencies, error) {
	rulesCfg, err := config.LoadRulesConfig()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load rules config: %w", err)
		}
		// No rules file is the common case outside client-specific
		// deployments.
		rulesCfg = &config.RulesConfig{
			ErrorPatterns:    classify.DefaultErrorPatterns,
			NotFoundPatterns: classify.DefaultNotFoundPatterns,
			FillerPhrases:    classify.DefaultFillerPhrases,
			EvalThreshold:    classify.DefaultEvalThreshold,
			AnalyzeThreshold: classify.DefaultAnalyzeThreshold,
		}
	}

	categoriesCfg, err := config.LoadCategoriesConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories config: %w", err)
	}

	evalClassifier := classify.New(rulesCfg.EvalRules())
	analyzeClassifier := classify.New(rulesCfg.AnalyzeRules())
	categories := categoriesCfg.Classifier()

	return &Dependencies{
		EvalClassifier:    evalClassifier,
		AnalyzeClassifier: analyzeClassifier,
		Categories:        categories,
		Analyzer:          analyze.New(analyzeClassifier, categories, logger),
		Logger:            logger,
	}, nil
}

// NewRunner builds an evaluation runner backed by the live bot API.
func NewRunner(cfg *Config, deps *Dependencies, casesFile string) (*runner.Runner, error) {
	if cfg.BotID == "" {
		return nil, fmt.Errorf("GBASE_BOT_ID is required")
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("GBASE_API_TOKEN is required")
	}

	client := gbase.NewClient(cfg.APIBaseURL, cfg.APIToken, cfg.BotID, &http.Client{}, deps.Logger)

	return runner.New(client, deps.EvalClassifier, runner.Options{
		BotID:     cfg.BotID,
		CasesFile: casesFile,
		Delay:     cfg.Delay,
		Timeout:   cfg.Timeout,
		Workers:   cfg.Workers,
	}, deps.Logger), nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}
