package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbase-tools/chateval/internal/dashboard"
	"github.com/gbase-tools/chateval/internal/models"
	"github.com/gbase-tools/chateval/internal/setup"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	input := flag.String("input", "", "Normalized log rows JSON file (- for stdin)")
	client := flag.String("client", "", "Client display name")
	period := flag.String("period", "", "Report period label (e.g. 2026年7月)")
	output := flag.String("output", ".", "Output directory for the report JSON")
	siteDir := flag.String("site-dir", "", "Dashboard site docs/ directory (optional)")
	clientSlug := flag.String("client-slug", "", "URL-safe client identifier, required with -site-dir")

	flag.Parse()

	if *input == "" || *client == "" || *period == "" {
		log.Fatal().Msg("required flags: -input, -client, -period")
	}
	if *siteDir != "" && *clientSlug == "" {
		log.Fatal().Msg("-client-slug is required with -site-dir")
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	deps, err := setup.Wire(&log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	rows, err := loadRows(*input)
	if err != nil {
		log.Fatal().Err(err).Str("file", *input).Msg("Failed to load log rows")
	}
	log.Info().Int("rows", len(rows)).Str("client", *client).Msg("Starting analysis")

	report, err := deps.Analyzer.Analyze(*client, *period, rows)
	if err != nil {
		log.Fatal().Err(err).Msg("Analysis failed")
	}

	outPath := filepath.Join(*output, "report_"+report.YearMonth+".json")
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode report")
	}
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		log.Fatal().Err(err).Str("file", outPath).Msg("Failed to write report")
	}
	log.Info().Str("file", outPath).Msg("Report written")

	if *siteDir != "" {
		path, err := dashboard.Update(*siteDir, *clientSlug, *client, dashboard.FromReport(report))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to update dashboard")
		}
		log.Info().Str("file", path).Msg("Dashboard updated")
	}
}

func loadRows(path string) ([]models.LogRow, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var rows []models.LogRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
