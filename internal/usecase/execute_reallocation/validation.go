package execute_reallocation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BlockerID == uuid.Nil {
		return fmt.Errorf("%w: blockerId is required", ErrInvalidInput)
	}

	if req.LargeReservationID == uuid.Nil {
		return fmt.Errorf("%w: largeReservationId is required", ErrInvalidInput)
	}

	if req.BlockerType != domain.BlockerDineIn && req.BlockerType != domain.BlockerReservation {
		return fmt.Errorf("%w: blockerType must be dine_in or reservation", ErrInvalidInput)
	}

	if len(req.FromTableIDs) == 0 || len(req.ToTableIDs) == 0 {
		return fmt.Errorf("%w: fromTableIds and toTableIds must not be empty", ErrInvalidInput)
	}

	if domain.NewTableSet(req.FromTableIDs...).HasAny(req.ToTableIDs) {
		return fmt.Errorf("%w: target tables overlap source tables", ErrInvalidInput)
	}

	return nil
}

// validateTablesExist проверяет, что все целевые столы есть в каталоге
func validateTablesExist(tables []*domain.Table, tableIDs []int64) error {
	known := domain.NewTableSet()
	for _, t := range tables {
		known.Add(t.ID)
	}
	for _, id := range tableIDs {
		if !known.Has(id) {
			return fmt.Errorf("%w: %d", ErrTableNotFound, id)
		}
	}
	return nil
}
