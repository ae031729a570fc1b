package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Invalid levels fall back to info
// instead of failing startup.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	out := zerolog.New(os.Stdout)
	if os.Getenv("CHATEVAL_LOG_PRETTY") == "true" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return out.
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}
