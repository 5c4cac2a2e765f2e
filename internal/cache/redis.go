package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "view:"

// Redis is a Store backed by a Redis instance shared by every replica.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps client. Entries expire after ttl even if never revalidated.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func viewKey(path, scope string) string {
	return keyPrefix + path + "|" + scope
}

// globEscaper quotes the characters Redis MATCH treats as wildcards.
var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func pathPattern(path string) string {
	return keyPrefix + globEscaper.Replace(path) + "|*"
}

func (r *Redis) Get(ctx context.Context, path, scope string) ([]byte, bool, error) {
	body, err := r.client.Get(ctx, viewKey(path, scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return body, true, nil
}

func (r *Redis) Set(ctx context.Context, path, scope string, body []byte) error {
	if err := r.client.Set(ctx, viewKey(path, scope), body, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Revalidate deletes every scope cached under path.
func (r *Redis) Revalidate(ctx context.Context, path string) error {
	var keys []string
	iter := r.client.Scan(ctx, 0, pathPattern(path), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %s: %w", path, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", path, err)
	}
	return nil
}
