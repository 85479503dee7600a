package models

import (
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID                   string  `json:"id"`
	CustomerName         string  `json:"customerName"`
	Email                string  `json:"email"`
	Phone                *string `json:"phone,omitempty"`
	PartySize            int     `json:"partySize"`
	Date                 string  `json:"date"` // "2026-10-23"
	Time                 string  `json:"time"` // "19:00"
	TableIDs             []int64 `json:"tableIds"`
	Status               string  `json:"status"`
	Notes                *string `json:"notes,omitempty"`
	RequiresReallocation bool    `json:"requiresReallocation"`
	DepositPaid          bool    `json:"depositPaid"`
	CreatedBy            string  `json:"createdBy"`
	SeatedAt             *string `json:"seatedAt,omitempty"`
	CreatedAt            string  `json:"createdAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// FromDomainReservation конвертирует domain.Reservation в ответ
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:                   r.ID.String(),
		CustomerName:         r.CustomerName,
		Email:                r.Email,
		Phone:                r.Phone,
		PartySize:            r.PartySize,
		Date:                 r.Date.Format(domain.DateFormat),
		Time:                 r.Time.String(),
		TableIDs:             r.TableIDs,
		Status:               string(r.Status),
		Notes:                r.Notes,
		RequiresReallocation: r.RequiresReallocation,
		DepositPaid:          r.DepositPaid,
		CreatedBy:            string(r.CreatedBy),
		CreatedAt:            r.CreatedAt.Format(time.RFC3339),
	}
	if r.SeatedAt != nil {
		seated := r.SeatedAt.Format(time.RFC3339)
		resp.SeatedAt = &seated
	}
	return resp
}

// FromDomainReservationList конвертирует список
func FromDomainReservationList(items []*domain.Reservation) *ReservationListResponse {
	out := make([]ReservationResponse, 0, len(items))
	for _, r := range items {
		out = append(out, *FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: out, Total: len(out)}
}
