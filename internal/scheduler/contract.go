package scheduler

import (
	"context"
	"time"
)

// JobFunc прогон обслуживания, возвращает число обработанных записей
type JobFunc func(ctx context.Context, now time.Time) (int, error)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
