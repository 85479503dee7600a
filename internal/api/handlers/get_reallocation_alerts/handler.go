package get_reallocation_alerts

import (
	"net/http"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
)

type Handler struct {
	useCase ScanAlertsUseCase
	logger  Logger
}

func NewHandler(useCase ScanAlertsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reallocation-alerts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/reallocation-alerts - Failed to scan: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if len(result.Alerts) > 0 {
		h.logger.Info("GET /admin/reallocation-alerts - Alerts found: count=%d", len(result.Alerts))
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
