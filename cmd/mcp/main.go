package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbase-tools/chateval/internal/mcpadapter"
	"github.com/gbase-tools/chateval/internal/setup"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.Wire(&logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	server := createMCPServer(deps)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes.
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "chateval",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_reply",
		Description: "Classify one chatbot reply as empty, error, not_found, filler_only, or answered, optionally with question category",
	}, mcpadapter.NewClassifyHandler(deps.EvalClassifier, deps.Categories))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_results",
		Description: "Aggregate classified case records into outcome counts, rates, per-category stats, and response-time percentiles",
	}, mcpadapter.NewSummarizeHandler())

	return server
}
