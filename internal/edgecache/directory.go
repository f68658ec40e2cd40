package edgecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Directory is the small key-value service mapping a partition's stable
// logical key to the URL of its latest published blob. It is pure
// indirection; the blobs themselves are immutable.
type Directory interface {
	// Get returns the stored pointer, or an empty string when the key has
	// never been published.
	Get(ctx context.Context, key string) (string, error)
	// Set atomically points the key at a new value.
	Set(ctx context.Context, key, value string) error
}

// RedisDirectory implements Directory on a Redis server.
type RedisDirectory struct {
	client *redis.Client
}

// NewRedisDirectory creates a Directory backed by the given Redis address.
// The connection is verified with a ping before use.
func NewRedisDirectory(ctx context.Context, addr, password string, db int) (*RedisDirectory, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to directory: %w", err)
	}

	return &RedisDirectory{client: client}, nil
}

// Get returns the pointer stored for key, or "" when absent.
func (d *RedisDirectory) Get(ctx context.Context, key string) (string, error) {
	value, err := d.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("directory get %q: %w", key, err)
	}

	return value, nil
}

// Set points key at value with no expiry.
func (d *RedisDirectory) Set(ctx context.Context, key, value string) error {
	if err := d.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("directory set %q: %w", key, err)
	}

	return nil
}

// Close releases the underlying Redis connection.
func (d *RedisDirectory) Close() error {
	return d.client.Close()
}
