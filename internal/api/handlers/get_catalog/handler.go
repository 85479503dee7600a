package get_catalog

import (
	"net/http"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
)

type Handler struct {
	service FloorService
	logger  Logger
}

func NewHandler(service FloorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/catalog
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.service.Catalog(r.Context())
	if err != nil {
		h.logger.Error("GET /catalog - Failed to load catalog: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, catalog)
}
