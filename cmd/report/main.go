package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbase-tools/chateval/internal/aggregate"
	"github.com/gbase-tools/chateval/internal/models"
	"github.com/gbase-tools/chateval/internal/store"
)

// roundFlag accumulates repeated -round values of the form
// label:date:bot1.json:bot2.json.
type roundFlag []string

func (r *roundFlag) String() string { return strings.Join(*r, ", ") }

func (r *roundFlag) Set(value string) error {
	if len(strings.SplitN(value, ":", 4)) != 4 {
		return fmt.Errorf("want label:date:bot1.json:bot2.json, got %q", value)
	}
	*r = append(*r, value)
	return nil
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var rounds roundFlag
	flag.Var(&rounds, "round", "Round spec label:date:bot1.json:bot2.json (repeatable, in order)")
	output := flag.String("output", "trend_report.json", "Output JSON file")

	flag.Parse()

	if len(rounds) == 0 {
		log.Fatal().Msg("at least one -round is required")
	}

	loaded := make([]models.Round, 0, len(rounds))
	for _, spec := range rounds {
		round, err := loadRound(spec)
		if err != nil {
			log.Fatal().Err(err).Str("round", spec).Msg("Failed to load round")
		}
		loaded = append(loaded, round)
	}

	trend, err := aggregate.CompareRounds(loaded)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compare rounds")
	}

	raw, err := json.MarshalIndent(trend, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode trend report")
	}
	if err := os.WriteFile(*output, raw, 0o644); err != nil {
		log.Fatal().Err(err).Str("file", *output).Msg("Failed to write trend report")
	}

	log.Info().
		Str("file", *output).
		Int("rounds", len(trend.Rounds)).
		Int("status_changes", len(trend.Changes)).
		Msg("Trend report written")
}

func loadRound(spec string) (models.Round, error) {
	parts := strings.SplitN(spec, ":", 4)

	bot1, err := store.Load(parts[2])
	if err != nil {
		return models.Round{}, fmt.Errorf("bot1 results: %w", err)
	}
	bot2, err := store.Load(parts[3])
	if err != nil {
		return models.Round{}, fmt.Errorf("bot2 results: %w", err)
	}

	return models.Round{
		Label: parts[0],
		Date:  parts[1],
		Bot1:  *bot1,
		Bot2:  *bot2,
	}, nil
}
