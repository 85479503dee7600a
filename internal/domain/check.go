package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckKind parent type of a table check
type CheckKind string

const (
	CheckDineIn      CheckKind = "dine_in"
	CheckReservation CheckKind = "reservation"
)

// CheckResponse staff answer to "is the party still here?"
type CheckResponse string

const (
	ResponseLeft        CheckResponse = "left"
	ResponseStillSeated CheckResponse = "still_seated"
)

// IsValid returns true for a known response
func (r CheckResponse) IsValid() bool {
	return r == ResponseLeft || r == ResponseStillSeated
}

// CheckSubject points to the party a check is about
type CheckSubject struct {
	Kind          CheckKind
	DineInID      *uuid.UUID
	ReservationID *uuid.UUID
}

// DineInSubject check subject for a walk-in
func DineInSubject(id uuid.UUID) CheckSubject {
	return CheckSubject{Kind: CheckDineIn, DineInID: &id}
}

// ReservationSubject check subject for a seated reservation
func ReservationSubject(id uuid.UUID) CheckSubject {
	return CheckSubject{Kind: CheckReservation, ReservationID: &id}
}

// TableCheck is a scheduled prompt about a seated party
type TableCheck struct {
	ID uuid.UUID
	CheckSubject
	PromptedAt  time.Time
	Response    *CheckResponse
	RespondedAt *time.Time
}

// IsPending returns true while nobody answered the check
func (c *TableCheck) IsPending() bool {
	return c.RespondedAt == nil
}

// IsOverdue returns true when the check was ignored past the grace period
func (c *TableCheck) IsOverdue(now time.Time, grace time.Duration) bool {
	return c.IsPending() && !c.PromptedAt.After(now.Add(-grace))
}
