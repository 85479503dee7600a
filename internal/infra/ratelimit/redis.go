package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLimiter общий для всех инстансов счетчик в Redis
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	clock  TimeProvider
}

// NewRedisLimiter создает лимитер поверх Redis
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		clock:  RealTimeProvider{},
	}
}

// Allow увеличивает счетчик окна и решает, пропускать ли запрос
func (l *RedisLimiter) Allow(ctx context.Context, key string) (*Decision, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: incr: %v", ErrStore, err)
	}

	// Первый запрос в окне открывает окно
	if count == 1 {
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			return nil, fmt.Errorf("%w: expire: %v", ErrStore, err)
		}
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: ttl: %v", ErrStore, err)
	}
	// Ключ без срока жизни остался после сбоя между INCR и EXPIRE
	if ttl < 0 {
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			return nil, fmt.Errorf("%w: expire: %v", ErrStore, err)
		}
		ttl = l.window
	}

	return decide(int(count), l.limit, l.clock.Now().Add(ttl)), nil
}

// Ping проверяет доступность Redis
func (l *RedisLimiter) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrStore, err)
	}
	return nil
}

func decide(count, limit int, resetAt time.Time) *Decision {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
