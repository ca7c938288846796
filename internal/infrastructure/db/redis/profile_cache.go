package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/platformlab/auth-api/internal/core/ports"
)

const profileTTL = 5 * time.Minute

// ProfileCache caches profile reads as JSON under profile:<user_id>.
// Entries expire after profileTTL and are invalidated explicitly on update
// and delete, so a hit can never outlive the record it mirrors by more than
// the TTL window.
type ProfileCache struct {
	client *redis.Client
}

// NewProfileCache wraps the given Redis client.
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

// Get returns the cached profile or (nil, nil) on a miss.
func (c *ProfileCache) Get(ctx context.Context, userID string) (*ports.Profile, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var p ports.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		// A corrupt entry behaves like a miss.
		return nil, nil
	}
	return &p, nil
}

// Set stores the profile with the cache TTL.
func (c *ProfileCache) Set(ctx context.Context, userID string, p *ports.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(userID), raw, profileTTL).Err()
}

// Invalidate drops the entry for userID.
func (c *ProfileCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *ProfileCache) key(userID string) string {
	return "profile:" + userID
}
