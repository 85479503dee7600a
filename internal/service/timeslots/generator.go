// Package timeslots строит сетку времени посадки на календарную дату.
package timeslots

import (
	"fmt"
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/types"
)

const (
	firstSlot       types.TimeString = "11:30"
	lastSlotWeekday types.TimeString = "20:30"
	lastSlotWeekend types.TimeString = "21:00"
	slotStepMinutes                  = 30
)

// Generate возвращает слоты с 11:30 с шагом 30 минут.
// Последний слот 21:00 в пятницу и субботу, 20:30 в остальные дни.
// День недели берется из календарных полей даты, а не из момента времени в какой-либо зоне.
func Generate(date time.Time) []types.TimeString {
	last := LastSlot(date)

	slots := make([]types.TimeString, 0, (last.Minutes()-firstSlot.Minutes())/slotStepMinutes+1)
	for m := firstSlot.Minutes(); m <= last.Minutes(); m += slotStepMinutes {
		slots = append(slots, types.FromMinutes(m))
	}
	return slots
}

// LastSlot последний слот на дату
func LastSlot(date time.Time) types.TimeString {
	switch calendarDay(date).Weekday() {
	case time.Friday, time.Saturday:
		return lastSlotWeekend
	default:
		return lastSlotWeekday
	}
}

// IsServiceTime проверяет, что t является слотом сетки на дату
func IsServiceTime(date time.Time, t types.TimeString) bool {
	if t.Validate() != nil {
		return false
	}
	m := t.Minutes()
	return m >= firstSlot.Minutes() &&
		m <= LastSlot(date).Minutes() &&
		(m-firstSlot.Minutes())%slotStepMinutes == 0
}

// ParseDate разбирает YYYY-MM-DD в полночь UTC этой календарной даты
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// Today календарная дата момента now в зоне ресторана
func Today(now time.Time, loc *time.Location) time.Time {
	return calendarDay(now.In(loc))
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
