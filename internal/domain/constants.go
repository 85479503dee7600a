package domain

import "time"

// Booking limits
const (
	MaxPartySize        = 38
	DepositMinPartySize = 10
	DepositAmountCents  = 5000
	DepositCurrency     = "cad"
	MinNameLength       = 2
	MaxNameLength       = 100
	MaxNotesLength      = 500
)

// Seating and hold durations
const (
	// SeatingDuration expected length of a sitting
	SeatingDuration = 90 * time.Minute

	// ConflictWindowMinutes half-width of the open occupancy window around a requested time
	ConflictWindowMinutes = 89

	CheckInterval       = 40 * time.Minute
	CheckGrace          = 10 * time.Minute
	DepositHold         = 30 * time.Minute
	LockTTL             = 15 * time.Minute
	ReviewDelay         = 120 * time.Minute
	AlertLookAhead      = 3 * time.Hour
	MovedReservationTTL = 120 * time.Minute
	MovedDineInTTL      = 60 * time.Minute
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses reservations in these states never occupy a table
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusNoShow,
}

// AlertableStatuses reservations eligible for reallocation alerts
var AlertableStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusDepositPaid,
}
