package models

import (
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// Request модели

// CreateDineInRequest посадка гостей без брони
type CreateDineInRequest struct {
	TableIDs         []int64 `json:"tableIds"`
	PartySize        int     `json:"partySize"`
	EstimatedMinutes int     `json:"estimatedMinutes"`
}

// TablesRequest действие над набором столов
type TablesRequest struct {
	TableIDs []int64 `json:"tableIds"`
	Minutes  int     `json:"minutes,omitempty"`
}

// Response модели

// DineInResponse созданная посадка
type DineInResponse struct {
	ID                 string  `json:"dineInId"`
	TableIDs           []int64 `json:"tableIds"`
	PartySize          int     `json:"partySize"`
	SeatedAt           string  `json:"seatedAt"`
	EstimatedReleaseAt string  `json:"estimatedReleaseAt"`
	FirstCheckAt       string  `json:"firstCheckAt"`
}

// ReleaseResponse итог освобождения столов
type ReleaseResponse struct {
	DineInsReleased       int   `json:"dineInsReleased"`
	ReservationsCompleted int   `json:"reservationsCompleted"`
	LocksRemoved          int64 `json:"locksRemoved"`
}

// ExtendResponse итог продления
type ExtendResponse struct {
	DineInsExtended int `json:"dineInsExtended"`
}

// TableDetailsResponse кто сидит за столом
type TableDetailsResponse struct {
	TableID   int64   `json:"tableId"`
	Type      string  `json:"type"` // available | dine_in | reservation
	Name      string  `json:"name,omitempty"`
	PartySize int     `json:"partySize,omitempty"`
	SeatedAt  *string `json:"seatedAt,omitempty"`
	ReleaseAt *string `json:"releaseAt,omitempty"`
	TableIDs  []int64 `json:"tableIds,omitempty"`
}

// TableResponse стол каталога
type TableResponse struct {
	ID              int64  `json:"id"`
	Label           string `json:"label"`
	Shape           string `json:"shape"`
	CapacityMin     int    `json:"capacityMin"`
	CapacityMax     int    `json:"capacityMax"`
	IsComboCritical bool   `json:"isComboCritical"`
	IsCombinable    bool   `json:"isCombinable"`
}

// ComboResponse комбинация столов
type ComboResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	TableIDs    []int64 `json:"tableIds"`
	MinCapacity int     `json:"minCapacity"`
	MaxCapacity int     `json:"maxCapacity"`
}

// CatalogResponse схема зала
type CatalogResponse struct {
	Tables []TableResponse `json:"tables"`
	Combos []ComboResponse `json:"combos"`
}

func formatTime(t time.Time) *string {
	s := t.Format(time.RFC3339)
	return &s
}

// FromDomainDineIn конвертирует посадку
func FromDomainDineIn(d *domain.DineIn, firstCheck *domain.TableCheck) *DineInResponse {
	resp := &DineInResponse{
		ID:                 d.ID.String(),
		TableIDs:           d.TableIDs,
		PartySize:          d.PartySize,
		SeatedAt:           d.SeatedAt.Format(time.RFC3339),
		EstimatedReleaseAt: d.EstimatedReleaseAt.Format(time.RFC3339),
	}
	if firstCheck != nil {
		resp.FirstCheckAt = firstCheck.PromptedAt.Format(time.RFC3339)
	}
	return resp
}

// AvailableTable стол свободен
func AvailableTable(tableID int64) *TableDetailsResponse {
	return &TableDetailsResponse{TableID: tableID, Type: "available"}
}

// DineInTable за столом гости без брони
func DineInTable(tableID int64, d *domain.DineIn) *TableDetailsResponse {
	return &TableDetailsResponse{
		TableID:   tableID,
		Type:      string(domain.CheckDineIn),
		Name:      domain.WalkInGuestName,
		PartySize: d.PartySize,
		SeatedAt:  formatTime(d.SeatedAt),
		ReleaseAt: formatTime(d.EstimatedReleaseAt),
		TableIDs:  d.TableIDs,
	}
}

// ReservationTable за столом рассаженная бронь
func ReservationTable(tableID int64, r *domain.Reservation) *TableDetailsResponse {
	resp := &TableDetailsResponse{
		TableID:   tableID,
		Type:      string(domain.CheckReservation),
		Name:      r.CustomerName,
		PartySize: r.PartySize,
		TableIDs:  r.TableIDs,
	}
	if r.SeatedAt != nil {
		resp.SeatedAt = formatTime(*r.SeatedAt)
	} else {
		resp.SeatedAt = formatTime(r.CreatedAt)
	}
	return resp
}

// FromDomainCatalog конвертирует столы и комбинации
func FromDomainCatalog(tables []*domain.Table, combos []*domain.TableCombo) *CatalogResponse {
	resp := &CatalogResponse{
		Tables: make([]TableResponse, 0, len(tables)),
		Combos: make([]ComboResponse, 0, len(combos)),
	}
	for _, t := range tables {
		resp.Tables = append(resp.Tables, TableResponse{
			ID:              t.ID,
			Label:           t.Label,
			Shape:           string(t.Shape),
			CapacityMin:     t.CapacityMin,
			CapacityMax:     t.CapacityMax,
			IsComboCritical: t.IsComboCritical,
			IsCombinable:    t.IsCombinable,
		})
	}
	for _, c := range combos {
		resp.Combos = append(resp.Combos, ComboResponse{
			ID:          c.ID,
			Name:        c.Name,
			TableIDs:    c.TableIDs,
			MinCapacity: c.MinCapacity,
			MaxCapacity: c.MaxCapacity,
		})
	}
	return resp
}
