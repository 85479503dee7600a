package assignment

import (
	"context"
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/types"
)

// TableCatalog источник столов и комбинаций
type TableCatalog interface {
	ListTables(ctx context.Context) ([]*domain.Table, error)
	ListCombos(ctx context.Context) ([]*domain.TableCombo, error)
}

// OccupancyResolver вычисляет занятость на дату и время
type OccupancyResolver interface {
	Resolve(ctx context.Context, date time.Time, t types.TimeString) (*domain.Occupancy, error)
}

// Metrics счетчик сработавших правил
type Metrics interface {
	ObserveAssignment(rule string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
