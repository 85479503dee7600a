package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Assignment is the engine's answer for a party
type Assignment struct {
	TableIDs               []int64
	IsCombo                bool
	RequiresReallocation   bool
	ReallocationSuggestion string
	Rule                   string
}

// ReallocationSuggestionText human-readable move hint for a blocking party
func ReallocationSuggestionText(partySize int, tableID int64) string {
	return fmt.Sprintf("Move party of %d from table %d to a non-critical table.", partySize, tableID)
}

// Occupancy is the set of busy tables for a date/time plus the parties holding them
type Occupancy struct {
	TableIDs     TableSet
	Reservations []*Reservation
	DineIns      []*DineIn
}

// ReservationOn returns the first conflicting reservation holding tableID
func (o *Occupancy) ReservationOn(tableID int64) *Reservation {
	for _, r := range o.Reservations {
		for _, id := range r.TableIDs {
			if id == tableID {
				return r
			}
		}
	}
	return nil
}

// BlockerType kind of party sitting on a reserved table
type BlockerType string

const (
	BlockerDineIn      BlockerType = "dine_in"
	BlockerReservation BlockerType = "reservation"
	BlockerUnknown     BlockerType = "unknown"
)

// UnknownGuestName display name for a lock holder that no longer resolves
const UnknownGuestName = "Unknown Guest"

// BlockerParty party currently holding a table needed by a large reservation
type BlockerParty struct {
	ID        string
	Type      BlockerType
	Name      string
	PartySize int
	TableIDs  []int64
}

// ReallocationAlert conflict between an upcoming large reservation and a blocker
type ReallocationAlert struct {
	ID             string
	Reservation    *Reservation
	BlockerTableID int64
	Blocker        BlockerParty
	SuggestedMove  []int64 // nil when nothing fits the blocker
}

// AlertID stable identifier of an alert
func AlertID(reservationID uuid.UUID, tableID int64) string {
	return fmt.Sprintf("%s_%d", reservationID, tableID)
}
