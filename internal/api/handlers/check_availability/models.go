package check_availability

import (
	"github.com/m04kA/TableReservationService/internal/service/timeslots"
	checkAvailability "github.com/m04kA/TableReservationService/internal/usecase/check_availability"
	"github.com/m04kA/TableReservationService/pkg/types"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	PartySize int    `json:"partySize"`
	Date      string `json:"date"` // "2026-10-23"
	Time      string `json:"time"` // "19:00"
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Available              bool    `json:"available"`
	Reason                 string  `json:"reason,omitempty"`
	TableIDs               []int64 `json:"tableIds,omitempty"`
	IsCombo                bool    `json:"isCombo,omitempty"`
	RequiresReallocation   bool    `json:"requiresReallocation,omitempty"`
	ReallocationSuggestion string  `json:"reallocationSuggestion,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
	date, err := timeslots.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		PartySize: r.PartySize,
		Date:      date,
		Time:      t,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	return &CheckAvailabilityResponse{
		Available:              resp.Available,
		Reason:                 resp.Reason,
		TableIDs:               resp.TableIDs,
		IsCombo:                resp.IsCombo,
		RequiresReallocation:   resp.RequiresReallocation,
		ReallocationSuggestion: resp.ReallocationSuggestion,
	}
}
