package execute_reallocation

import (
	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
	executeReallocation "github.com/m04kA/TableReservationService/internal/usecase/execute_reallocation"
)

// ExecuteReallocationRequest HTTP request model
type ExecuteReallocationRequest struct {
	BlockerID          string  `json:"blockerId"`
	BlockerType        string  `json:"blockerType"` // dine_in | reservation
	FromTableIDs       []int64 `json:"fromTableIds"`
	ToTableIDs         []int64 `json:"toTableIds"`
	LargeReservationID string  `json:"largeReservationId"`
}

// ExecuteReallocationResponse HTTP response model
type ExecuteReallocationResponse struct {
	BlockerID string  `json:"blockerId"`
	TableIDs  []int64 `json:"tableIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ExecuteReallocationRequest) ToUseCaseRequest() (*executeReallocation.Request, error) {
	blockerID, err := uuid.Parse(r.BlockerID)
	if err != nil {
		return nil, err
	}

	largeID, err := uuid.Parse(r.LargeReservationID)
	if err != nil {
		return nil, err
	}

	return &executeReallocation.Request{
		BlockerID:          blockerID,
		BlockerType:        domain.BlockerType(r.BlockerType),
		FromTableIDs:       r.FromTableIDs,
		ToTableIDs:         r.ToTableIDs,
		LargeReservationID: largeID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *executeReallocation.Response) *ExecuteReallocationResponse {
	return &ExecuteReallocationResponse{
		BlockerID: resp.BlockerID.String(),
		TableIDs:  resp.TableIDs,
	}
}
