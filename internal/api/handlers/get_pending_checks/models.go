package get_pending_checks

import (
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// PendingCheckResponse проверка, ожидающая ответа персонала
type PendingCheckResponse struct {
	ID            string  `json:"id"`
	Kind          string  `json:"kind"` // dine_in | reservation
	DineInID      *string `json:"dineInId,omitempty"`
	ReservationID *string `json:"reservationId,omitempty"`
	PromptedAt    string  `json:"promptedAt"`
}

// PendingChecksResponse список проверок
type PendingChecksResponse struct {
	Checks []PendingCheckResponse `json:"checks"`
	Total  int                    `json:"total"`
}

// FromDomainChecks конвертирует проверки в HTTP ответ
func FromDomainChecks(checks []*domain.TableCheck) *PendingChecksResponse {
	out := make([]PendingCheckResponse, 0, len(checks))
	for _, c := range checks {
		item := PendingCheckResponse{
			ID:         c.ID.String(),
			Kind:       string(c.Kind),
			PromptedAt: c.PromptedAt.Format(time.RFC3339),
		}
		if c.DineInID != nil {
			id := c.DineInID.String()
			item.DineInID = &id
		}
		if c.ReservationID != nil {
			id := c.ReservationID.String()
			item.ReservationID = &id
		}
		out = append(out, item)
	}
	return &PendingChecksResponse{Checks: out, Total: len(out)}
}
