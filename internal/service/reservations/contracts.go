package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	ListForReminder(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	ListForReview(ctx context.Context, seatedBefore time.Time) ([]*domain.Reservation, error)
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []domain.ReservationStatus, to domain.ReservationStatus) (bool, error)
	MarkSeated(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	ClaimReminder(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	ClaimReview(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

// LockManager снятие замков брони
type LockManager interface {
	ReleaseHeld(ctx context.Context, tableIDs []int64, holder string) (int64, error)
}

// CheckScheduler планирование первой проверки после посадки
type CheckScheduler interface {
	Schedule(ctx context.Context, subject domain.CheckSubject, now time.Time) (*domain.TableCheck, error)
}

// Notifier отправка писем
type Notifier interface {
	Send(ctx context.Context, to string, kind domain.NotificationKind, data map[string]interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик обработанных записей
type Metrics interface {
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
