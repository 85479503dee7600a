package ratelimit

import (
	"context"
	"time"
)

// Decision результат проверки лимита
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter счетчик запросов с фиксированным окном
type Limiter interface {
	Allow(ctx context.Context, key string) (*Decision, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
