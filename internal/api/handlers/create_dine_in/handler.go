package create_dine_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
	"github.com/m04kA/TableReservationService/internal/service/floor"
	"github.com/m04kA/TableReservationService/internal/service/floor/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры посадки"
	msgTableNotFound      = "стол не найден"
	msgTablesOccupied     = "столы уже заняты"
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

// Handle POST /api/v1/admin/dine-ins
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDineInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/dine-ins - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	dineIn, err := h.service.CreateDineIn(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, floor.ErrInvalidInput):
			h.logger.Warn("POST /admin/dine-ins - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, floor.ErrTableNotFound):
			h.logger.Warn("POST /admin/dine-ins - Table not found: %v", err)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, floor.ErrTablesOccupied):
			h.logger.Warn("POST /admin/dine-ins - Tables occupied: tables=%v", req.TableIDs)
			handlers.RespondConflict(w, msgTablesOccupied)

		default:
			h.logger.Error("POST /admin/dine-ins - Failed to seat walk-in: tables=%v, error=%v", req.TableIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/dine-ins - Walk-in seated: dine_in_id=%s, tables=%v", dineIn.ID, dineIn.TableIDs)
	handlers.RespondJSON(w, http.StatusCreated, dineIn)
}
