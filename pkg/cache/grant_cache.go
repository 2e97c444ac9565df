package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// GrantCacheTTL is the time-to-live for cached download grants. It sits
	// below the 1-hour grant expiry so a cached URL is never served after
	// the signature itself has lapsed.
	GrantCacheTTL = 55 * time.Minute

	grantCacheKeyPrefix = "grant"
)

// GrantCache stores presigned download URLs keyed by object key. Display
// paths re-derive a signed URL for every item on every list render; caching
// the grant avoids re-signing the same object within its validity window.
//
// Key format: "grant:{objectKey}"
type GrantCache struct {
	client *RedisClient
}

// NewGrantCache creates a GrantCache backed by the given RedisClient.
func NewGrantCache(r *RedisClient) *GrantCache {
	return &GrantCache{client: r}
}

// Get retrieves a cached signed URL for the object key.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *GrantCache) Get(ctx context.Context, objectKey string) (string, error) {
	url, err := c.client.Client().Get(ctx, c.key(objectKey)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", redis.Nil
		}
		return "", fmt.Errorf("grant cache get: %w", err)
	}
	return url, nil
}

// Set stores a signed URL for the object key with the grant TTL.
func (c *GrantCache) Set(ctx context.Context, objectKey, signedURL string) error {
	if err := c.client.Client().Set(ctx, c.key(objectKey), signedURL, GrantCacheTTL).Err(); err != nil {
		return fmt.Errorf("grant cache set: %w", err)
	}
	return nil
}

// Delete evicts the cached grant for the object key. Called when the owning
// item is deleted so a removed image's URL stops being served.
func (c *GrantCache) Delete(ctx context.Context, objectKey string) error {
	if err := c.client.Client().Del(ctx, c.key(objectKey)).Err(); err != nil {
		return fmt.Errorf("grant cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "grant:{objectKey}"
func (c *GrantCache) key(objectKey string) string {
	return fmt.Sprintf("%s:%s", grantCacheKeyPrefix, objectKey)
}
