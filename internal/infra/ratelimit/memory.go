package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter счетчик в памяти процесса, когда Redis отключен
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	window  time.Duration
	clock   TimeProvider
}

// NewMemoryLimiter создает лимитер в памяти
func NewMemoryLimiter(limit int, size time.Duration, clock TimeProvider) *MemoryLimiter {
	if clock == nil {
		clock = RealTimeProvider{}
	}
	return &MemoryLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		window:  size,
		clock:   clock,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (*Decision, error) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(l.window)}
		l.windows[key] = w
	}
	w.count++

	return decide(w.count, l.limit, w.resetAt), nil
}

// Cleanup удаляет истекшие окна
func (l *MemoryLimiter) Cleanup() int {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}
