package domain

import (
	"fmt"
	"sort"
)

// TableShape physical category of a table
type TableShape string

const (
	ShapeRegular TableShape = "regular"
	ShapeRound   TableShape = "round"
	ShapeLarge   TableShape = "large"
)

// Table is a seat-able unit of the floor
type Table struct {
	ID              int64
	Label           string
	Shape           TableShape
	CapacityMin     int
	CapacityMax     int
	IsComboCritical bool // bridge table needed by a large combo
	IsCombinable    bool
}

// Fits returns true if the party does not exceed table capacity
func (t *Table) Fits(partySize int) bool {
	return partySize <= t.CapacityMax
}

// TableCombo is a predefined set of tables joined for one large party
type TableCombo struct {
	ID          int64
	Name        string
	TableIDs    []int64
	MinCapacity int
	MaxCapacity int
}

// Covers returns true if partySize is inside the combo's capacity range
func (c *TableCombo) Covers(partySize int) bool {
	return partySize >= c.MinCapacity && partySize <= c.MaxCapacity
}

// Contains returns true if the combo includes tableID
func (c *TableCombo) Contains(tableID int64) bool {
	for _, id := range c.TableIDs {
		if id == tableID {
			return true
		}
	}
	return false
}

// ValidateCombo checks that every member exists and is combinable
func ValidateCombo(combo *TableCombo, tables map[int64]*Table) error {
	if len(combo.TableIDs) == 0 {
		return fmt.Errorf("combo %d has no tables", combo.ID)
	}
	if combo.MinCapacity > combo.MaxCapacity {
		return fmt.Errorf("combo %d has min capacity above max", combo.ID)
	}
	for _, id := range combo.TableIDs {
		t, ok := tables[id]
		if !ok {
			return fmt.Errorf("combo %d references unknown table %d", combo.ID, id)
		}
		if !t.IsCombinable {
			return fmt.Errorf("combo %d references non-combinable table %d", combo.ID, id)
		}
	}
	return nil
}

// TableSet is a set of table ids; duplicates collapse
type TableSet map[int64]struct{}

// NewTableSet builds a set from ids
func NewTableSet(ids ...int64) TableSet {
	s := make(TableSet, len(ids))
	s.Add(ids...)
	return s
}

func (s TableSet) Add(ids ...int64) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

func (s TableSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// HasAny returns true if at least one id is in the set
func (s TableSet) HasAny(ids []int64) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// Sorted returns ids in ascending order
func (s TableSet) Sorted() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DistinctIDs removes duplicates keeping first-seen order
func DistinctIDs(ids []int64) []int64 {
	seen := make(TableSet, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen.Has(id) {
			continue
		}
		seen.Add(id)
		out = append(out, id)
	}
	return out
}
