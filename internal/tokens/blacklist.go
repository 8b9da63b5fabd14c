package tokens

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:access:"

// package-level Redis client used for token revocation (optional)
var blacklistClient *redis.Client

// SetBlacklistClient configures the Redis client used for blacklist operations.
// Safe to call with nil to disable revocation.
func SetBlacklistClient(c *redis.Client) {
	blacklistClient = c
}

// Revoke stores token in the blacklist for ttl, normally the token's
// remaining lifetime. Without a Redis client it is a no-op.
func Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if blacklistClient == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	return blacklistClient.Set(ctx, blacklistPrefix+token, "1", ttl).Err()
}

// IsRevoked reports whether token is in the blacklist.
func IsRevoked(ctx context.Context, token string) (bool, error) {
	if blacklistClient == nil {
		return false, nil
	}
	n, err := blacklistClient.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
