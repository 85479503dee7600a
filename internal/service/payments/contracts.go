package payments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/internal/integrations/stripegateway"
)

// PaymentGateway платежный провайдер
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*stripegateway.Intent, error)
	ParseEvent(payload []byte, signature string) (*stripegateway.Event, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	SetPaymentIntent(ctx context.Context, id uuid.UUID, paymentIntentID string) error
	MarkDepositPaid(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []domain.ReservationStatus, to domain.ReservationStatus) (bool, error)
}

// LockManager снятие замков брони
type LockManager interface {
	ReleaseHeld(ctx context.Context, tableIDs []int64, holder string) (int64, error)
}

// Notifier отправка писем
type Notifier interface {
	Send(ctx context.Context, to string, kind domain.NotificationKind, data map[string]interface{})
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
