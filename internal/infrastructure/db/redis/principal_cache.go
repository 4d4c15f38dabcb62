package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/passport-hq/passport-api/internal/core/ports"
)

const defaultActivityTTL = time.Hour

// PrincipalCache answers "is this principal still active?" through a
// bounded-staleness Redis cache in front of the user store. It backs the
// authorization guard's revalidation mode: a disabled account is locked out
// within the cache TTL instead of the refresh-token TTL.
//
// Entries expire by TTL only — a deactivation mid-TTL stays effective until
// expiry, which is the accepted staleness bound.
// Key format: principal:active:<user_id>
type PrincipalCache struct {
	client *redis.Client
	users  ports.UserRepository
	ttl    time.Duration
}

// NewPrincipalCache creates a PrincipalCache. If ttl <= 0 the default of
// one hour is used.
func NewPrincipalCache(client *redis.Client, users ports.UserRepository, ttl time.Duration) *PrincipalCache {
	if ttl <= 0 {
		ttl = defaultActivityTTL
	}
	return &PrincipalCache{client: client, users: users, ttl: ttl}
}

// Active reports whether the principal exists and is active, consulting the
// cache first and the user store on a miss.
func (c *PrincipalCache) Active(ctx context.Context, userID string) (bool, error) {
	val, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == nil {
		return val == "1", nil
	}
	if err != redis.Nil {
		return false, fmt.Errorf("principal cache get: %w", err)
	}

	user, err := c.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}

	cached := "0"
	if user.IsActive {
		cached = "1"
	}
	if err := c.client.Set(ctx, c.key(userID), cached, c.ttl).Err(); err != nil {
		return user.IsActive, fmt.Errorf("principal cache set: %w", err)
	}
	return user.IsActive, nil
}

func (c *PrincipalCache) key(userID string) string {
	return "principal:active:" + userID
}
