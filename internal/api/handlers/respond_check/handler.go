package respond_check

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/internal/service/tablechecks"
)

const (
	msgInvalidCheckID     = "некорректный ID проверки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidResponse    = "ответ должен быть left или still_seated"
	msgNotFound           = "проверка не найдена"
	msgAlreadyResponded   = "на проверку уже ответили"
	msgInvalidSubject     = "проверка не привязана к гостям"
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

// Handle POST /api/v1/admin/checks/{checkId}/respond
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	checkID, err := uuid.Parse(mux.Vars(r)["checkId"])
	if err != nil {
		h.logger.Warn("POST /admin/checks/{id}/respond - Invalid check ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCheckID)
		return
	}

	var req RespondCheckRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/checks/{id}/respond - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Respond(r.Context(), checkID, domain.CheckResponse(req.Response), h.now())
	if err != nil {
		switch {
		case errors.Is(err, tablechecks.ErrInvalidResponse):
			h.logger.Warn("POST /admin/checks/{id}/respond - Invalid response: %q", req.Response)
			handlers.RespondBadRequest(w, msgInvalidResponse)

		case errors.Is(err, tablechecks.ErrCheckNotFound):
			h.logger.Warn("POST /admin/checks/{id}/respond - Check not found: check_id=%s", checkID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tablechecks.ErrAlreadyResponded):
			h.logger.Warn("POST /admin/checks/{id}/respond - Already responded: check_id=%s", checkID)
			handlers.RespondConflict(w, msgAlreadyResponded)

		case errors.Is(err, tablechecks.ErrInvalidSubject):
			h.logger.Error("POST /admin/checks/{id}/respond - Check without parent: check_id=%s", checkID)
			handlers.RespondConflict(w, msgInvalidSubject)

		default:
			h.logger.Error("POST /admin/checks/{id}/respond - Failed: check_id=%s, error=%v", checkID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
