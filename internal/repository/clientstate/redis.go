package clientstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fireworks-storefront/internal/domain"
	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis stores records under "storefront:<scope>:<key>". A zero ttl keeps
// records until deleted.
func NewRedis(client *redis.Client, scope string, ttl time.Duration) Repository {
	return &redisRepo{
		client: client,
		prefix: "storefront:" + scopeOrDefault(scope),
		ttl:    ttl,
	}
}

func (r *redisRepo) key(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *redisRepo) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *redisRepo) Save(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
