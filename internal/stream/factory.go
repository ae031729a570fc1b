package stream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gbase-tools/chateval/internal/category"
	"github.com/gbase-tools/chateval/internal/classify"
	connect "github.com/gbase-tools/chateval/internal/redis"
	streamredis "github.com/gbase-tools/chateval/internal/stream/redis"
)

type Config struct {
	Provider    string // redis for now; kafka and sqs are plausible later
	RedisConfig *streamredis.StreamConfig
}

func NewConsumer(
	ctx context.Context,
	cfg *Config,
	classifier *classify.Classifier,
	categories *category.Classifier,
	logger *zerolog.Logger,
) (Consumer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := connect.ConnectRedis(
			ctx,
			cfg.RedisConfig.RedisAddr,
			cfg.RedisConfig.RedisPassword,
			5,
			logger,
		)
		if err != nil {
			return nil, err
		}

		return streamredis.NewConsumer(
			client,
			cfg.RedisConfig.Stream,
			cfg.RedisConfig.Group,
			cfg.RedisConfig.ConsumerName,
			classifier,
			categories,
			logger,
		), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
