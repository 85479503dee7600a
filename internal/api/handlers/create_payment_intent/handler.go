package create_payment_intent

import (
	"errors"
	"net/http"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
	"github.com/m04kA/TableReservationService/internal/service/payments"
	"github.com/m04kA/TableReservationService/internal/service/payments/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректный ID бронирования"
	msgNotFound            = "бронирование не найдено"
	msgDepositNotRequired  = "бронирование не требует депозита"
	msgPaymentsUnavailable = "онлайн-оплата временно недоступна"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/intents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateIntentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/intents - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	intent, err := h.service.CreateIntent(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /payments/intents - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, payments.ErrReservationNotFound):
			h.logger.Warn("POST /payments/intents - Reservation not found: reservation_id=%s", req.ReservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrDepositNotRequired):
			h.logger.Warn("POST /payments/intents - Deposit not required: reservation_id=%s", req.ReservationID)
			handlers.RespondConflict(w, msgDepositNotRequired)

		case errors.Is(err, payments.ErrPaymentsDisabled):
			h.logger.Warn("POST /payments/intents - Payments disabled")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPaymentsUnavailable)

		default:
			h.logger.Error("POST /payments/intents - Failed to create intent: reservation_id=%s, error=%v", req.ReservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, intent)
}
