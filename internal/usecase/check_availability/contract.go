package check_availability

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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
