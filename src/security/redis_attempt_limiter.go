package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const attemptKeyPrefix = "lifelog:login:attempts:"

// RedisAttemptLimiter stores the counters in Redis so that every server
// instance sees the same lockout. On Redis errors it falls back to memory.
type RedisAttemptLimiter struct {
	client   *redis.Client
	limit    int
	window   time.Duration
	fallback *MemoryAttemptLimiter
	logger   *logrus.Logger
}

// NewRedisClient Redisクライアントを作成し接続を確認
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 接続テスト
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisAttemptLimiter creates a Redis-backed limiter
func NewRedisAttemptLimiter(client *redis.Client, limit int, window time.Duration, logger *logrus.Logger) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{
		client:   client,
		limit:    limit,
		window:   window,
		fallback: NewMemoryAttemptLimiter(limit, window),
		logger:   logger,
	}
}

func (r *RedisAttemptLimiter) Status(ctx context.Context, key string) (AttemptStatus, error) {
	k := attemptKeyPrefix + key

	failures, err := r.client.Get(ctx, k).Int()
	if errors.Is(err, redis.Nil) {
		return newStatus(0, r.limit, 0), nil
	}
	if err != nil {
		r.logger.WithError(err).Warn("Redisから試行回数を取得できないためメモリにフォールバック")
		return r.fallback.Status(ctx, key)
	}

	ttl, err := r.client.TTL(ctx, k).Result()
	if err != nil {
		return r.fallback.Status(ctx, key)
	}
	return newStatus(failures, r.limit, ttl), nil
}

func (r *RedisAttemptLimiter) RegisterFailure(ctx context.Context, key string) (AttemptStatus, error) {
	k := attemptKeyPrefix + key

	failures, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		r.logger.WithError(err).Warn("Redisに試行回数を記録できないためメモリにフォールバック")
		return r.fallback.RegisterFailure(ctx, key)
	}
	// 失敗のたびにウィンドウを延長する
	if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
		return AttemptStatus{}, fmt.Errorf("failed to set attempt window: %w", err)
	}
	return newStatus(int(failures), r.limit, r.window), nil
}

func (r *RedisAttemptLimiter) Reset(ctx context.Context, key string) error {
	_ = r.fallback.Reset(ctx, key)
	if err := r.client.Del(ctx, attemptKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset attempts: %w", err)
	}
	return nil
}
