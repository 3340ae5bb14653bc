package sessions

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository implements Repository using one hash per user under
// "refresh:user:<id>". No TTL is set on the hash: the revoked flag must
// outlive the token's own expiry so a revoked token can never come back.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository creates a Redis-based refresh-token repository. Prefix may be empty.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "refresh:user:"
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) key(userID int64) string {
	return r.prefix + strconv.FormatInt(userID, 10)
}

func (r *RedisRepository) Upsert(ctx context.Context, rec *RefreshRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	// single HSET replaces every field atomically for this user key
	return r.client.HSet(ctx, r.key(rec.UserID), map[string]interface{}{
		"token":     rec.Token,
		"expiresAt": rec.ExpiresAt.UTC().Format(time.RFC3339Nano),
		"isRevoked": strconv.FormatBool(rec.IsRevoked),
		"updatedAt": rec.UpdatedAt.Format(time.RFC3339Nano),
	}).Err()
}

func (r *RedisRepository) GetByUser(ctx context.Context, userID int64) (*RefreshRecord, error) {
	fields, err := r.client.HGetAll(ctx, r.key(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	rec := &RefreshRecord{UserID: userID, Token: fields["token"]}
	if v, err := time.Parse(time.RFC3339Nano, fields["expiresAt"]); err == nil {
		rec.ExpiresAt = v
	}
	if v, err := time.Parse(time.RFC3339Nano, fields["updatedAt"]); err == nil {
		rec.UpdatedAt = v
	}
	rec.IsRevoked = fields["isRevoked"] == "true"
	return rec, nil
}

func (r *RedisRepository) Revoke(ctx context.Context, userID int64) error {
	return r.client.HSet(ctx, r.key(userID),
		"isRevoked", "true",
		"updatedAt", time.Now().UTC().Format(time.RFC3339Nano),
	).Err()
}
