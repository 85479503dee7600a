package get_catalog

import (
	"context"

	"github.com/m04kA/TableReservationService/internal/service/floor/models"
)

type FloorService interface {
	Catalog(ctx context.Context) (*models.CatalogResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
