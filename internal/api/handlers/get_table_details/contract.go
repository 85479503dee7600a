package get_table_details

import (
	"context"

	"github.com/m04kA/TableReservationService/internal/service/floor/models"
)

type FloorService interface {
	TableDetails(ctx context.Context, tableID int64) (*models.TableDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
