package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/pkg/types"
)

// ReservationStatus lifecycle state of a reservation
type ReservationStatus string

const (
	StatusDepositRequired ReservationStatus = "deposit_required"
	StatusConfirmed       ReservationStatus = "confirmed"
	StatusDepositPaid     ReservationStatus = "deposit_paid"
	StatusSeated          ReservationStatus = "seated"
	StatusCompleted       ReservationStatus = "completed"
	StatusCancelled       ReservationStatus = "cancelled"
	StatusNoShow          ReservationStatus = "no_show"
)

// IsValid returns true for a known status
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusDepositRequired, StatusConfirmed, StatusDepositPaid, StatusSeated,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CreatedBy origin of a reservation
type CreatedBy string

const (
	CreatedByCustomer CreatedBy = "customer"
	CreatedByAdmin    CreatedBy = "admin"
)

// Reservation is a booking for a future date and time
type Reservation struct {
	ID           uuid.UUID
	CustomerName string
	Email        string
	Phone        *string
	PartySize    int
	Date         time.Time // calendar date, time of day ignored
	Time         types.TimeString
	TableIDs     []int64
	Status       ReservationStatus
	Notes        *string

	RequiresReallocation bool
	DepositPaid          bool
	PaymentIntentID      *string
	CreatedBy            CreatedBy

	SeatedAt       *time.Time
	ReminderSentAt *time.Time
	ReviewSentAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation may still occupy a table
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled && r.Status != StatusNoShow
}

// CanBeCancelled returns true while the guest has not been seated
func (r *Reservation) CanBeCancelled() bool {
	switch r.Status {
	case StatusDepositRequired, StatusConfirmed, StatusDepositPaid:
		return true
	}
	return false
}

// CanBeSeated returns true for a confirmed booking
func (r *Reservation) CanBeSeated() bool {
	return r.Status == StatusConfirmed || r.Status == StatusDepositPaid
}

// RequiresDeposit applies the large-party deposit rule
func RequiresDeposit(partySize, minPartySize int, waived bool) bool {
	return partySize >= minPartySize && !waived
}
