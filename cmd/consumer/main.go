package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbase-tools/chateval/internal/setup"
	"github.com/gbase-tools/chateval/internal/stream"
	streamredis "github.com/gbase-tools/chateval/internal/stream/redis"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(&logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	consumer, err := stream.NewConsumer(ctx, &stream.Config{
		RedisConfig: streamredis.NewStreamConfig(
			cfg.RedisAddr,
			os.Getenv("REDIS_PASSWORD"),
			cfg.RedisStream,
			cfg.RedisGroup,
			"chateval-"+uuid.NewString()[:8],
		),
	}, deps.AnalyzeClassifier, deps.Categories, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create consumer")
	}
	defer consumer.Stop()

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up consumer group")
	}

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Consumer failed")
	}
	log.Info().Msg("Consumer stopped")
}
