package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
	createReservation "github.com/m04kA/TableReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgPartyTooLarge      = "для такой большой компании свяжитесь с рестораном"
	msgDateInPast         = "дата бронирования уже прошла"
	msgInvalidTimeSlot    = "ресторан не принимает гостей в это время"
	msgTableNotFound      = "стол не найден"
	msgTablesUnavailable  = "выбранные столы уже заняты, выберите другое время или столы"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
	isAdmin bool
	route   string
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		route:   "POST /reservations",
	}
}

// NewAdminHandler обработчик для брони от имени администратора (без лимита размера и с отменой депозита)
func NewAdminHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		isAdmin: true,
		route:   "POST /admin/reservations",
	}
}

// Handle POST /api/v1/reservations, POST /api/v1/admin/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.isAdmin)
	if err != nil {
		h.logger.Warn("%s - Failed to parse request: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrTablesUnavailable):
			h.logger.Warn("%s - Tables unavailable: tables=%v, date=%s, time=%s", h.route, req.TableIDs, req.Date, req.Time)
			handlers.RespondConflict(w, msgTablesUnavailable)

		case errors.Is(err, createReservation.ErrTableNotFound):
			h.logger.Warn("%s - Table not found: tables=%v", h.route, req.TableIDs)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createReservation.ErrPartyTooLarge):
			h.logger.Warn("%s - Party too large: party=%d", h.route, req.PartySize)
			handlers.RespondBadRequest(w, msgPartyTooLarge)

		case errors.Is(err, createReservation.ErrDateInPast):
			h.logger.Warn("%s - Date in past: date=%s", h.route, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("%s - Invalid time slot: date=%s, time=%s", h.route, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", h.route, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("%s - Failed to create reservation: party=%d, date=%s, time=%s, error=%v",
				h.route, req.PartySize, req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Reservation created: reservation_id=%s, status=%s", h.route, result.ReservationID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
