package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// Config holds the connection settings for the answer cache backend.
type Config struct {
	Addr string
	DB   int
}

// Connect opens a Redis connection for the chat answer cache and verifies it
// with a ping. The cache is an optional dependency: callers treat a failed
// connect as "run without caching", not as a startup error.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("answer cache ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
