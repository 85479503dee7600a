package get_reallocation_alerts

import (
	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/internal/service/reservations/models"
	scanAlerts "github.com/m04kA/TableReservationService/internal/usecase/scan_reallocation_alerts"
)

// BlockerResponse гости на мостовом столе
type BlockerResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"` // dine_in | reservation | unknown
	Name      string  `json:"name"`
	PartySize int     `json:"partySize"`
	TableIDs  []int64 `json:"tableIds"`
}

// AlertResponse конфликт большой брони с занятым столом
type AlertResponse struct {
	ID             string                      `json:"id"`
	Reservation    *models.ReservationResponse `json:"reservation"`
	BlockerTableID int64                       `json:"blockerTableId"`
	Blocker        BlockerResponse             `json:"blocker"`
	SuggestedMove  []int64                     `json:"suggestedMove"` // null, если пересадить некуда
}

// AlertsResponse HTTP response model
type AlertsResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *scanAlerts.Response) *AlertsResponse {
	out := &AlertsResponse{Alerts: make([]AlertResponse, 0, len(resp.Alerts))}
	for _, a := range resp.Alerts {
		out.Alerts = append(out.Alerts, fromDomainAlert(a))
	}
	return out
}

func fromDomainAlert(a domain.ReallocationAlert) AlertResponse {
	tableIDs := a.Blocker.TableIDs
	if tableIDs == nil {
		tableIDs = []int64{}
	}
	return AlertResponse{
		ID:             a.ID,
		Reservation:    models.FromDomainReservation(a.Reservation),
		BlockerTableID: a.BlockerTableID,
		Blocker: BlockerResponse{
			ID:        a.Blocker.ID,
			Type:      string(a.Blocker.Type),
			Name:      a.Blocker.Name,
			PartySize: a.Blocker.PartySize,
			TableIDs:  tableIDs,
		},
		SuggestedMove: a.SuggestedMove,
	}
}
