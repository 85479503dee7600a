package execute_reallocation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	UpdateTableIDs(ctx context.Context, id uuid.UUID, tableIDs []int64) error
	ClearReallocationFlag(ctx context.Context, id uuid.UUID) error
}

// DineInRepository интерфейс репозитория посадок без брони
type DineInRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DineIn, error)
	UpdateTableIDs(ctx context.Context, id uuid.UUID, tableIDs []int64) error
}

// TableCatalog интерфейс каталога столов
type TableCatalog interface {
	ListTables(ctx context.Context) ([]*domain.Table, error)
}

// LockManager перенос замков
type LockManager interface {
	ReleaseHeld(ctx context.Context, tableIDs []int64, holder string) (int64, error)
	Claim(ctx context.Context, tableIDs []int64, holder string, until time.Time) error
}

// Notifier отправка писем гостю
type Notifier interface {
	Send(ctx context.Context, to string, kind domain.NotificationKind, data map[string]interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
