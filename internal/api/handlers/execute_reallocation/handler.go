package execute_reallocation

import (
	"errors"
	"net/http"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
	executeReallocation "github.com/m04kA/TableReservationService/internal/usecase/execute_reallocation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidIDs          = "некорректный ID гостей или бронирования"
	msgInvalidInput        = "некорректные параметры пересадки"
	msgReservationNotFound = "бронирование не найдено"
	msgBlockerNotFound     = "пересаживаемые гости не найдены"
	msgTableNotFound       = "стол не найден"
	msgTargetsOccupied     = "целевые столы уже заняты"
)

type Handler struct {
	useCase ExecuteReallocationUseCase
	logger  Logger
}

func NewHandler(useCase ExecuteReallocationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/reallocation/execute
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ExecuteReallocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/reallocation/execute - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/reallocation/execute - Failed to parse ids: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, executeReallocation.ErrTargetsOccupied):
			h.logger.Warn("POST /admin/reallocation/execute - Targets occupied: to=%v", req.ToTableIDs)
			handlers.RespondConflict(w, msgTargetsOccupied)

		case errors.Is(err, executeReallocation.ErrReservationNotFound):
			h.logger.Warn("POST /admin/reallocation/execute - Reservation not found: id=%s", req.LargeReservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, executeReallocation.ErrBlockerNotFound):
			h.logger.Warn("POST /admin/reallocation/execute - Blocker not found: id=%s, type=%s", req.BlockerID, req.BlockerType)
			handlers.RespondNotFound(w, msgBlockerNotFound)

		case errors.Is(err, executeReallocation.ErrTableNotFound):
			h.logger.Warn("POST /admin/reallocation/execute - Table not found: %v", err)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, executeReallocation.ErrInvalidInput):
			h.logger.Warn("POST /admin/reallocation/execute - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/reallocation/execute - Failed: blocker=%s, error=%v", req.BlockerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/reallocation/execute - Party moved: blocker=%s, tables=%v", result.BlockerID, result.TableIDs)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
