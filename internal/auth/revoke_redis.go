package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "auth:revoked:"

// RedisRevoker keeps revoked token ids in redis with a TTL equal to the
// remaining token lifetime.
type RedisRevoker struct {
	client *redis.Client
}

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err(); err != nil {
		return errors.Wrap(err, "storing revoked token")
	}
	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, errors.Wrap(err, "looking up revoked token")
	}
	return n > 0, nil
}
