package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

// RedisCache keeps the latest payment status per order so status reads
// don't have to hit MySQL. Values are best effort; MySQL stays the
// source of truth.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (r *RedisCache) SetStatus(ctx context.Context, orderID int64, status domain.PaymentStatus) error {
	return r.rdb.Set(ctx, statusKey(orderID), string(status), r.ttl).Err()
}

func (r *RedisCache) GetStatus(ctx context.Context, orderID int64) (domain.PaymentStatus, bool, error) {
	val, err := r.rdb.Get(ctx, statusKey(orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return domain.PaymentStatus(val), true, nil
}

func statusKey(orderID int64) string {
	return "order:status:" + strconv.FormatInt(orderID, 10)
}

var _ usecase.OrderCache = (*RedisCache)(nil)
