package extend_tables

import (
	"context"

	"github.com/m04kA/TableReservationService/internal/service/floor/models"
)

type FloorService interface {
	ExtendTables(ctx context.Context, req *models.TablesRequest) (*models.ExtendResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
