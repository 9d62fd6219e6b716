package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const answerTTL = time.Hour

// AnswerCache stores chat answers keyed by (org, category, question hash) so
// repeated questions over an unchanged dataset skip the external responder.
// Entries expire after answerTTL; dataset re-uploads simply age out.
type AnswerCache struct {
	client *redis.Client
}

// NewAnswerCache creates an AnswerCache wrapping the given Redis client.
func NewAnswerCache(client *redis.Client) *AnswerCache {
	return &AnswerCache{client: client}
}

// Get returns the cached answer for key and whether one was present.
func (c *AnswerCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("answer cache get: %w", err)
	}
	return val, true, nil
}

// Set records an answer for key, expiring after answerTTL.
func (c *AnswerCache) Set(ctx context.Context, key, answer string) error {
	if err := c.client.Set(ctx, key, answer, answerTTL).Err(); err != nil {
		return fmt.Errorf("answer cache set: %w", err)
	}
	return nil
}
