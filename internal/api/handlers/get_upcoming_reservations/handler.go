package get_upcoming_reservations

import (
	"net/http"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations/upcoming
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListUpcoming(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/reservations/upcoming - Failed to list reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/reservations/upcoming - Reservations retrieved: total=%d", list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
