package redis

import (
	"context"
	"time"
)

const denylistPrefix = "auth:revoked:"

// TokenDenylist records revoked token ids until their natural expiry.
type TokenDenylist struct {
	store *Store
}

func NewTokenDenylist(store *Store) *TokenDenylist {
	return &TokenDenylist{store: store}
}

// Revoke marks jti as revoked for ttl. Non-positive ttls are ignored since
// the token is already expired.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 || jti == "" {
		return nil
	}
	return d.store.Set(ctx, denylistPrefix+jti, "1", ttl)
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return d.store.Exists(ctx, denylistPrefix+jti)
}
