package scan_reallocation_alerts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListRequiringReallocation(ctx context.Context, date time.Time, from, to types.TimeString) ([]*domain.Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
}

// DineInRepository интерфейс репозитория посадок без брони
type DineInRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DineIn, error)
}

// LockReader чтение замков столов
type LockReader interface {
	Holders(ctx context.Context, tableIDs []int64) ([]*domain.TableLock, error)
}

// AssignmentEngine интерфейс движка подбора столов
type AssignmentEngine interface {
	Assign(ctx context.Context, partySize int, date time.Time, t types.TimeString) (*domain.Assignment, error)
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
