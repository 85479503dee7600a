package execute_reallocation

import (
	"context"

	executeReallocation "github.com/m04kA/TableReservationService/internal/usecase/execute_reallocation"
)

type ExecuteReallocationUseCase interface {
	Execute(ctx context.Context, req *executeReallocation.Request) (*executeReallocation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
