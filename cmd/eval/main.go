package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbase-tools/chateval/internal/aggregate"
	"github.com/gbase-tools/chateval/internal/config"
	"github.com/gbase-tools/chateval/internal/setup"
	"github.com/gbase-tools/chateval/internal/store"
)

func main() {
	startTime := time.Now()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	botID := flag.String("bot-id", "", "Bot ID to evaluate (overrides GBASE_BOT_ID)")
	cases := flag.String("cases", "cases.yaml", "Test-case YAML file")
	output := flag.String("output", "", "Output JSON file (default: results_<bot-id>_<date>.json)")
	delay := flag.Duration("delay", time.Second, "Pause between questions")
	timeout := flag.Duration("timeout", 60*time.Second, "Per-question timeout")
	limit := flag.Int("limit", 0, "Run only the first N cases (0 = all)")
	workers := flag.Int("workers", 1, "Concurrent question workers")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	ctx, cancel := setupGracefulShutdown()
	defer cancel()

	cfg := setup.LoadConfig()
	if *botID != "" {
		cfg.BotID = *botID
	}
	cfg.Delay = *delay
	cfg.Timeout = *timeout
	cfg.Workers = *workers

	deps, err := setup.Wire(&log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	testCases, err := config.LoadCases(*cases)
	if err != nil {
		log.Fatal().Err(err).Str("file", *cases).Msg("Failed to load cases")
	}
	if *limit > 0 && *limit < len(testCases) {
		testCases = testCases[:*limit]
	}
	log.Info().Int("cases", len(testCases)).Str("bot_id", cfg.BotID).Msg("Starting evaluation run")

	r, err := setup.NewRunner(cfg, deps, *cases)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build runner")
	}

	set := r.Run(ctx, testCases)

	outPath := *output
	if outPath == "" {
		outPath = "results_" + cfg.BotID + "_" + time.Now().Format("20060102") + ".json"
	}
	if err := store.Save(outPath, set); err != nil {
		log.Fatal().Err(err).Str("file", outPath).Msg("Failed to save results")
	}

	summary := aggregate.Summarize(set.Results)
	log.Info().
		Str("file", outPath).
		Int("total", summary.Total).
		Float64("answer_rate", summary.AnswerRate).
		Float64("rag_success_rate", summary.RAGSuccessRate).
		Dur("elapsed", time.Since(startTime)).
		Msg("Evaluation run complete")
}

func setupGracefulShutdown() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Warn().Msg("Received interrupt signal, finishing current work...")
		cancel()
	}()

	return ctx, cancel
}
