package get_pending_checks

import (
	"net/http"
	"time"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
)

type Handler struct {
	service TableCheckService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service TableCheckService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle GET /api/v1/admin/checks/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	checks, err := h.service.ListPending(r.Context(), h.now())
	if err != nil {
		h.logger.Error("GET /admin/checks/pending - Failed to list checks: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainChecks(checks))
}
