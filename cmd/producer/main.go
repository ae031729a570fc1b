package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbase-tools/chateval/internal/models"
	red "github.com/gbase-tools/chateval/internal/redis"
)

func main() {
	data := flag.String("d", "", "Inline JSON log row")
	stream := flag.String("stream", "chat-events", "Stream name")
	flag.Parse()

	if *data == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(*data, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(data, stream string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := red.ConnectRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3, &log.Logger)
	if err != nil {
		return err
	}
	defer client.Close()

	// Validate before publishing so a typo surfaces here, not in the
	// consumer's skip log.
	var row models.LogRow
	if err := json.Unmarshal([]byte(data), &row); err != nil {
		return fmt.Errorf("invalid log row: %w", err)
	}
	if row.Question == "" {
		return fmt.Errorf("log row needs a question")
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": data},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("id", id).Str("stream", stream).Msg("Event published")
	return nil
}
