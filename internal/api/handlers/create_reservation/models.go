package create_reservation

import (
	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/service/timeslots"
	createReservation "github.com/m04kA/TableReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/TableReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerName         string  `json:"customerName"`
	Email                string  `json:"email"`
	Phone                *string `json:"phone,omitempty"`
	PartySize            int     `json:"partySize"`
	Date                 string  `json:"date"` // "2026-10-23"
	Time                 string  `json:"time"` // "19:00"
	TableIDs             []int64 `json:"tableIds"`
	Notes                *string `json:"notes,omitempty"`
	RequiresReallocation bool    `json:"requiresReallocation,omitempty"`
	WaiveDeposit         bool    `json:"waiveDeposit,omitempty"` // учитывается только для администратора
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	ReservationID   uuid.UUID `json:"reservationId"`
	Status          string    `json:"status"`
	RequiresDeposit bool      `json:"requiresDeposit"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(isAdmin bool) (*createReservation.Request, error) {
	date, err := timeslots.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		CustomerName:         r.CustomerName,
		Email:                r.Email,
		Phone:                r.Phone,
		PartySize:            r.PartySize,
		Date:                 date,
		Time:                 t,
		TableIDs:             r.TableIDs,
		Notes:                r.Notes,
		IsAdmin:              isAdmin,
		WaiveDeposit:         isAdmin && r.WaiveDeposit,
		RequiresReallocation: r.RequiresReallocation,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	return &CreateReservationResponse{
		ReservationID:   resp.ReservationID,
		Status:          resp.Status,
		RequiresDeposit: resp.RequiresDeposit,
	}
}
