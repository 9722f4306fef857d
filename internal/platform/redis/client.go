package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"harborbank/internal/platform/config"
	"harborbank/pkg/platform/sentinel"
)

// clientName shows up in CLIENT LIST so operators can tell our
// connections apart on a shared Redis.
const clientName = "harborbank"

// Client is the connection behind the redis storage backend.
type Client struct {
	*redis.Client
}

// New connects to the configured Redis and pings it once.
// Returns nil if the URL is empty. An unreachable server is reported as
// sentinel.ErrUnavailable.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, errors.Join(sentinel.ErrUnavailable, err))
	}

	return &Client{Client: client}, nil
}

func options(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	if opts.ClientName == "" {
		opts.ClientName = clientName
	}
	return opts, nil
}
