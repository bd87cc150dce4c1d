package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userhub/account-system/internal/core/domain"
)

const identityTTL = time.Minute

// IdentityCache caches token-resolved identities in Redis for the access
// guard's hot path. Entries are stored as the outward JSON form of the
// user, so the password hash never enters the cache. Mutating operations
// must call Invalidate so stale identities are never served.
// Key format: identity:<user_id>
type IdentityCache struct {
	client *redis.Client
}

func NewIdentityCache(client *redis.Client) *IdentityCache {
	return &IdentityCache{client: client}
}

// Get returns the cached identity, or (nil, nil) on a miss.
func (c *IdentityCache) Get(ctx context.Context, id int64) (*domain.User, error) {
	payload, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("identity cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("identity cache decode: %w", err)
	}
	return &user, nil
}

// Set stores the identity with a short TTL.
func (c *IdentityCache) Set(ctx context.Context, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("identity cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), payload, identityTTL).Err()
}

// Invalidate drops the cached identity after an update, password change or
// delete.
func (c *IdentityCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *IdentityCache) key(id int64) string {
	return fmt.Sprintf("identity:%d", id)
}
