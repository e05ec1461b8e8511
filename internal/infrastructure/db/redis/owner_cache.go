package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userhub/identity-service/internal/core/ports"
)

const defaultOwnerTTL = time.Minute

// OwnerCache resolves a token subject to the owning user id, caching the
// result in Redis under a short TTL. Every ownership check would otherwise
// cost a user lookup in the primary store. Entries are invalidated when a
// user is deleted; a Redis outage degrades to uncached repository lookups.
// Key format: owner:<username>
type OwnerCache struct {
	client *redis.Client
	users  ports.UserRepository
	ttl    time.Duration
}

// NewOwnerCache wraps the given Redis client and user repository.
// A non-positive ttl falls back to one minute.
func NewOwnerCache(client *redis.Client, users ports.UserRepository, ttl time.Duration) *OwnerCache {
	if ttl <= 0 {
		ttl = defaultOwnerTTL
	}
	return &OwnerCache{client: client, users: users, ttl: ttl}
}

// ResolveOwnerID returns the user id for username, consulting the cache
// first. Unknown usernames propagate domain.ErrUserNotFound from the
// repository and are never cached.
func (c *OwnerCache) ResolveOwnerID(ctx context.Context, username string) (string, error) {
	if id, err := c.client.Get(ctx, c.key(username)).Result(); err == nil && id != "" {
		return id, nil
	}

	user, err := c.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	// Best effort; a failed write just means the next check hits the store.
	_ = c.client.Set(ctx, c.key(username), user.ID, c.ttl).Err()
	return user.ID, nil
}

// Invalidate drops the cached resolution for username.
func (c *OwnerCache) Invalidate(ctx context.Context, username string) error {
	return c.client.Del(ctx, c.key(username)).Err()
}

func (c *OwnerCache) key(username string) string {
	return "owner:" + username
}
