package get_table_details

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
	"github.com/m04kA/TableReservationService/internal/service/floor"
)

const (
	msgInvalidTableID = "некорректный ID стола"
	msgNotFound       = "стол не найден"
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

// Handle GET /api/v1/admin/tables/{tableId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tableID, err := strconv.ParseInt(mux.Vars(r)["tableId"], 10, 64)
	if err != nil || tableID <= 0 {
		h.logger.Warn("GET /admin/tables/{id} - Invalid table ID: %s", mux.Vars(r)["tableId"])
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}

	details, err := h.service.TableDetails(r.Context(), tableID)
	if err != nil {
		switch {
		case errors.Is(err, floor.ErrTableNotFound):
			h.logger.Warn("GET /admin/tables/{id} - Table not found: table_id=%d", tableID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/tables/{id} - Failed to get table: table_id=%d, error=%v", tableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, details)
}
