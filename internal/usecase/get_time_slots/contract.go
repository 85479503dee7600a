package get_time_slots

import (
	"context"
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/types"
)

// AssignmentEngine интерфейс движка подбора столов
type AssignmentEngine interface {
	Assign(ctx context.Context, partySize int, date time.Time, t types.TimeString) (*domain.Assignment, error)
}

// ExpirySweeper отменяет брони с просроченным депозитом
type ExpirySweeper interface {
	ExpireStale(ctx context.Context, now time.Time) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
