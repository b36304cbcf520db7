package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout = 5 * time.Second

	// The OTP store is the only redis consumer: short bursts of small
	// commands, no pipelines. A modest pool with one warm connection is
	// plenty and keeps idle footprint low.
	defaultPoolSize     = 8
	defaultMinIdleConns = 1
)

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr     string
	DB       int
	Timeout  time.Duration
	PoolSize int
}

// Connect initialises a Redis client and validates connectivity with a ping.
// Defaults are applied for the timeout and pool sizing when unset.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		PoolSize:     poolSize,
		MinIdleConns: defaultMinIdleConns,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
