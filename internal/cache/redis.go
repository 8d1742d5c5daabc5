package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "othengine:search:"
	DefaultTTL = 24 * time.Hour
)

// Redis stores search results in Redis as JSON.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the Redis server at url.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	// Parse Redis URL
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test the connection
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error pinging Redis: %w", err)
	}

	return NewRedisFromClient(client, ttl), nil
}

// NewRedisFromClient wraps an existing client. A ttl of zero means entries don't expire.
func NewRedisFromClient(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

// Lookup looks up a search result.
func (r *Redis) Lookup(ctx context.Context, key Key) (Entry, bool, error) {
	data, err := r.client.Get(ctx, keyPrefix+key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("error getting search result: %w", err)
	}

	var entry Entry
	if err = json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("error decoding search result: %w", err)
	}

	return entry, true, nil
}

// Store saves a search result.
func (r *Redis) Store(ctx context.Context, key Key, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("error encoding search result: %w", err)
	}

	if err = r.client.Set(ctx, keyPrefix+key.String(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("error storing search result: %w", err)
	}

	return nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
