package create_reservation

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/internal/service/timeslots"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxPartySize int) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if req.PartySize > maxPartySize {
		return fmt.Errorf("%w: max %d guests", ErrPartyTooLarge, maxPartySize)
	}

	return nil
}

// validateSchedule проверяет дату относительно сегодняшнего дня ресторана и сетку слотов
func validateSchedule(req *Request, now time.Time, loc *time.Location) error {
	if isDateInPast(req.Date, now, loc) {
		return fmt.Errorf("%w: %s", ErrDateInPast, req.Date.Format(domain.DateFormat))
	}

	if !timeslots.IsServiceTime(req.Date, req.Time) {
		return fmt.Errorf("%w: %s on %s", ErrInvalidTimeSlot, req.Time, req.Date.Format(domain.DateFormat))
	}

	return nil
}

// isDateInPast сравнивает календарные даты, сегодня определяется в зоне ресторана
func isDateInPast(date, now time.Time, loc *time.Location) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(timeslots.Today(now, loc))
}

// validateTablesExist проверяет, что все столы есть в каталоге
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
