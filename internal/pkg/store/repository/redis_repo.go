package repository

import (
	"context"
	"fmt"
	"time"

	"loanservicing/internal/pkg/consts"

	"github.com/redis/go-redis/v9"
)

type RedisStoreAdapter struct {
	client *redis.Client
}

func NewRedisStoreAdapter(client *redis.Client) *RedisStoreAdapter {
	return &RedisStoreAdapter{client: client}
}

func (a *RedisStoreAdapter) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return a.client.Set(ctx, key, value, expiration).Err()
}

func (a *RedisStoreAdapter) Get(ctx context.Context, key string) (interface{}, error) {
	return a.client.Get(ctx, key).Bytes()
}

func (a *RedisStoreAdapter) Delete(ctx context.Context, key string) error {
	return a.client.Del(ctx, key).Err()
}

func (a *RedisStoreAdapter) Exists(ctx context.Context, key string) (bool, error) {
	val, err := a.client.Exists(ctx, key).Result()
	return val > 0, err
}

func (a *RedisStoreAdapter) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return a.client.Expire(ctx, key, expiration).Result()
}

func (a *RedisStoreAdapter) TTL(ctx context.Context, key string) (time.Duration, error) {
	return a.client.TTL(ctx, key).Result()
}

// AcquireDispatchLock takes a short-lived lock on a (installment, rule) pair so
// overlapping collection passes do not send the same reminder twice. Returns
// false when another pass already holds the lock.
func (a *RedisStoreAdapter) AcquireDispatchLock(ctx context.Context, installmentKey, ruleID string) (bool, error) {
	key := dispatchLockKey(installmentKey, ruleID)
	return a.client.SetNX(ctx, key, "locked", consts.DispatchLockTTL).Result()
}

func (a *RedisStoreAdapter) ReleaseDispatchLock(ctx context.Context, installmentKey, ruleID string) error {
	return a.client.Del(ctx, dispatchLockKey(installmentKey, ruleID)).Err()
}

func dispatchLockKey(installmentKey, ruleID string) string {
	return fmt.Sprintf(consts.FiredPairKeyPattern, installmentKey, ruleID)
}
