package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const dineInHolderPrefix = "DINEIN_"

// HolderKind kind of lock owner
type HolderKind string

const (
	HolderReservation HolderKind = "reservation"
	HolderDineIn      HolderKind = "dine_in"
	HolderUnknown     HolderKind = "unknown"
)

// TableLock is an advisory claim on a table. One lock per table.
type TableLock struct {
	TableID     int64
	HolderID    string
	LockedUntil time.Time
}

// IsExpired returns true once the lock is no longer enforced
func (l *TableLock) IsExpired(now time.Time) bool {
	return !l.LockedUntil.After(now)
}

// ReservationHolder holder id for a reservation
func ReservationHolder(id uuid.UUID) string {
	return id.String()
}

// DineInHolder holder id for a walk-in
func DineInHolder(id uuid.UUID) string {
	return dineInHolderPrefix + id.String()
}

// ParseHolder resolves holder id into its kind and entity id
func ParseHolder(holder string) (HolderKind, uuid.UUID) {
	if strings.HasPrefix(holder, dineInHolderPrefix) {
		id, err := uuid.Parse(strings.TrimPrefix(holder, dineInHolderPrefix))
		if err != nil {
			return HolderUnknown, uuid.Nil
		}
		return HolderDineIn, id
	}
	id, err := uuid.Parse(holder)
	if err != nil {
		return HolderUnknown, uuid.Nil
	}
	return HolderReservation, id
}
