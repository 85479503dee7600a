package floor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// TableCatalog столы и комбинации
type TableCatalog interface {
	ListTables(ctx context.Context) ([]*domain.Table, error)
	GetTable(ctx context.Context, id int64) (*domain.Table, error)
	ListCombos(ctx context.Context) ([]*domain.TableCombo, error)
}

// DineInRepository посадки без брони
type DineInRepository interface {
	Create(ctx context.Context, d *domain.DineIn) error
	FindOccupiedByTables(ctx context.Context, tableIDs []int64) ([]*domain.DineIn, error)
	Release(ctx context.Context, id uuid.UUID) (bool, error)
	ExtendRelease(ctx context.Context, id uuid.UUID, d time.Duration) error
}

// ReservationRepository рассаженные бронирования
type ReservationRepository interface {
	FindSeatedByTables(ctx context.Context, tableIDs []int64) ([]*domain.Reservation, error)
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []domain.ReservationStatus, to domain.ReservationStatus) (bool, error)
	ClaimReview(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

// LockManager замки столов
type LockManager interface {
	Claim(ctx context.Context, tableIDs []int64, holder string, until time.Time) error
	Release(ctx context.Context, tableIDs []int64) (int64, error)
	Extend(ctx context.Context, holder string, until time.Time) (int64, error)
}

// CheckScheduler планирование и закрытие проверок
type CheckScheduler interface {
	Schedule(ctx context.Context, subject domain.CheckSubject, now time.Time) (*domain.TableCheck, error)
	Close(ctx context.Context, subject domain.CheckSubject, now time.Time) (int64, error)
}

// Notifier отправка писем
type Notifier interface {
	Send(ctx context.Context, to string, kind domain.NotificationKind, data map[string]interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
