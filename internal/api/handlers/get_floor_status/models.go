package get_floor_status

import (
	"github.com/m04kA/TableReservationService/internal/service/timeslots"
	getFloorStatus "github.com/m04kA/TableReservationService/internal/usecase/get_floor_status"
	"github.com/m04kA/TableReservationService/pkg/types"
)

// FloorStatusRequest HTTP request model
type FloorStatusRequest struct {
	PartySize int    `json:"partySize"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// FloorStatusResponse HTTP response model
type FloorStatusResponse struct {
	OccupiedTableIDs  []int64 `json:"occupiedTableIds"`
	EligibleTableIDs  []int64 `json:"eligibleTableIds"`
	SuggestedTableIDs []int64 `json:"suggestedTableIds"`
	IsCombo           bool    `json:"isCombo"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *FloorStatusRequest) ToUseCaseRequest() (*getFloorStatus.Request, error) {
	date, err := timeslots.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &getFloorStatus.Request{
		PartySize: r.PartySize,
		Date:      date,
		Time:      t,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFloorStatus.Response) *FloorStatusResponse {
	return &FloorStatusResponse{
		OccupiedTableIDs:  nonNil(resp.OccupiedTableIDs),
		EligibleTableIDs:  nonNil(resp.EligibleTableIDs),
		SuggestedTableIDs: nonNil(resp.SuggestedTableIDs),
		IsCombo:           resp.IsCombo,
	}
}

// nonNil пустой массив вместо null в JSON
func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
