package extend_tables

import (
	"errors"
	"net/http"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
	"github.com/m04kA/TableReservationService/internal/service/floor"
	"github.com/m04kA/TableReservationService/internal/service/floor/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный список столов"
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

// Handle POST /api/v1/admin/tables/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.TablesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/tables/extend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ExtendTables(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, floor.ErrInvalidInput):
			h.logger.Warn("POST /admin/tables/extend - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/tables/extend - Failed: tables=%v, error=%v", req.TableIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/tables/extend - Tables extended: tables=%v", req.TableIDs)
	handlers.RespondJSON(w, http.StatusOK, result)
}
