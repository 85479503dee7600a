package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
}

// TableCatalog интерфейс каталога столов
type TableCatalog interface {
	ListTables(ctx context.Context) ([]*domain.Table, error)
}

// OccupancyResolver занятость столов в окне посадки
type OccupancyResolver interface {
	OccupiedTableIDs(ctx context.Context, date time.Time, t types.TimeString) (domain.TableSet, error)
}

// Assigner подбор столов движком
type Assigner interface {
	Assign(ctx context.Context, partySize int, date time.Time, t types.TimeString) (*domain.Assignment, error)
}

// LockManager захват замков на столы
type LockManager interface {
	ClaimFor(ctx context.Context, tableIDs []int64, holder string) error
}

// Notifier отправка писем гостю
type Notifier interface {
	Send(ctx context.Context, to string, kind domain.NotificationKind, data map[string]interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
