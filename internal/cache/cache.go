package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ListingTTL bounds the staleness of every cached listing snapshot.
const ListingTTL = 60 * time.Second

// Store is the read-through cache consumed by the service layer. A nil
// result from Get means a miss; implementations never surface backend
// failures to callers.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Client wraps redis.Client but fails safe: connectivity errors degrade to
// cache misses and best-effort writes, logged and swallowed. A failed
// invalidation must never fail the mutation that triggered it.
type Client struct {
	client *redis.Client
}

var _ Store = (*Client)(nil)

// New creates a new Redis-backed cache client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return NewFromClient(redis.NewClient(opts))
}

// NewFromClient wraps an existing redis client, allowing the cache and the
// reset token store to share one connection pool.
func NewFromClient(client *redis.Client) *Client {
	return &Client{client: client}
}

// Get returns the cached value, or nil on a miss or when redis is unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		// fail safe: behave like a cache miss
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	return nil
}

// Delete removes a key. Deleting an absent key is a no-op; redis errors are
// logged and ignored.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache delete failed")
	}
	return nil
}
