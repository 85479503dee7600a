package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
	"github.com/m04kA/TableReservationService/internal/service/payments"
	"github.com/m04kA/TableReservationService/internal/service/payments/models"
)

const (
	// maxPayloadBytes предел размера события Stripe
	maxPayloadBytes = 65536

	signatureHeader = "Stripe-Signature"

	msgInvalidPayload   = "некорректное тело события"
	msgInvalidSignature = "неверная подпись события"
	msgPaymentsDisabled = "онлайн-оплата не настроена"
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

// Handle POST /api/v1/payments/webhook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Подпись считается по сырому телу, поэтому DecodeJSON здесь не подходит
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read payload: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get(signatureHeader)); err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidSignature):
			h.logger.Warn("POST /payments/webhook - Invalid signature: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, payments.ErrPaymentsDisabled):
			h.logger.Warn("POST /payments/webhook - Payments disabled")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPaymentsDisabled)

		default:
			h.logger.Error("POST /payments/webhook - Failed to apply event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.WebhookResponse{Received: true})
}
