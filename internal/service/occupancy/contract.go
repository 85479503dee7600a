package occupancy

import (
	"context"
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/types"
)

// ReservationRepository чтение бронирований в окне времени
type ReservationRepository interface {
	ListActiveInWindow(ctx context.Context, date time.Time, from, to types.TimeString) ([]*domain.Reservation, error)
}

// DineInRepository чтение занятых посадок без брони
type DineInRepository interface {
	ListOccupiedReleasingAfter(ctx context.Context, at time.Time) ([]*domain.DineIn, error)
}
