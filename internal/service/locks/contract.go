package locks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// LockRepository хранилище замков столов
type LockRepository interface {
	Upsert(ctx context.Context, tableIDs []int64, holder string, until time.Time) error
	Acquire(ctx context.Context, tableIDs []int64, holder string, until, now time.Time) ([]int64, error)
	ListByTableIDs(ctx context.Context, tableIDs []int64) ([]*domain.TableLock, error)
	DeleteByTableIDs(ctx context.Context, tableIDs []int64) (int64, error)
	DeleteByTablesAndHolder(ctx context.Context, tableIDs []int64, holder string) (int64, error)
	ExtendHolder(ctx context.Context, holder string, until time.Time) (int64, error)
}

// ReservationRepository бронирования, ожидающие депозита
type ReservationRepository interface {
	ListStaleDepositRequired(ctx context.Context, createdBefore time.Time) ([]*domain.Reservation, error)
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []domain.ReservationStatus, to domain.ReservationStatus) (bool, error)
}

// Metrics счетчики конфликтов и обработанных записей
type Metrics interface {
	ObserveLockConflict()
	ObserveSweep(sweep string, processed int)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
