package create_dine_in

import (
	"context"

	"github.com/m04kA/TableReservationService/internal/service/floor/models"
)

type FloorService interface {
	CreateDineIn(ctx context.Context, req *models.CreateDineInRequest) (*models.DineInResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
