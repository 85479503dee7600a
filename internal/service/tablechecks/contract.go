package tablechecks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// CheckRepository хранилище проверок столов
type CheckRepository interface {
	Create(ctx context.Context, c *domain.TableCheck) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TableCheck, error)
	ListPromptedBefore(ctx context.Context, at time.Time) ([]*domain.TableCheck, error)
	MarkResponded(ctx context.Context, id uuid.UUID, response domain.CheckResponse, at time.Time) (bool, error)
	CloseForSubject(ctx context.Context, subject domain.CheckSubject, response domain.CheckResponse, at time.Time) (int64, error)
}

// DineInRepository посадки без брони
type DineInRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DineIn, error)
	Release(ctx context.Context, id uuid.UUID) (bool, error)
	ExtendRelease(ctx context.Context, id uuid.UUID, d time.Duration) error
}

// ReservationRepository бронирования
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []domain.ReservationStatus, to domain.ReservationStatus) (bool, error)
	ClaimReview(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

// LockManager замки столов
type LockManager interface {
	ReleaseHeld(ctx context.Context, tableIDs []int64, holder string) (int64, error)
	Extend(ctx context.Context, holder string, until time.Time) (int64, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
