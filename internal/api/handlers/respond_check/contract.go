package respond_check

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
)

type TableCheckService interface {
	Respond(ctx context.Context, checkID uuid.UUID, response domain.CheckResponse, now time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
