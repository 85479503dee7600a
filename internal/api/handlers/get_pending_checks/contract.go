package get_pending_checks

import (
	"context"
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
)

type TableCheckService interface {
	ListPending(ctx context.Context, now time.Time) ([]*domain.TableCheck, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
