package domain

import (
	"time"

	"github.com/google/uuid"
)

// DineInStatus state of a walk-in party
type DineInStatus string

const (
	DineInOccupied DineInStatus = "occupied"
	DineInReleased DineInStatus = "released"
)

// DineIn is a walk-in party seated without a reservation
type DineIn struct {
	ID                 uuid.UUID
	TableIDs           []int64
	PartySize          int
	SeatedAt           time.Time
	EstimatedReleaseAt time.Time
	Status             DineInStatus
}

// IsOccupyingAt returns true if the party still holds its tables at instant t
func (d *DineIn) IsOccupyingAt(t time.Time) bool {
	return d.Status == DineInOccupied && d.EstimatedReleaseAt.After(t)
}

// WalkInGuestName display name for dine-ins in admin views
const WalkInGuestName = "Walk-in Guest"
