package get_upcoming_reservations

import (
	"context"

	"github.com/m04kA/TableReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	ListUpcoming(ctx context.Context) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
