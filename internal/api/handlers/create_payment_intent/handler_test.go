package create_payment_intent

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TableReservationService/internal/service/payments"
	"github.com/m04kA/TableReservationService/internal/service/payments/models"
	"github.com/m04kA/TableReservationService/pkg/logger"
)

type fakeService struct {
	resp *models.CreateIntentResponse
	err  error
}

func (f *fakeService) CreateIntent(_ context.Context, _ *models.CreateIntentRequest) (*models.CreateIntentResponse, error) {
	return f.resp, f.err
}

func post(svc PaymentService, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/payments/intents", strings.NewReader(body)))
	return w
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{resp: &models.CreateIntentResponse{ClientSecret: "pi_1_secret", PaymentIntentID: "pi_1", Amount: 5000, Currency: "cad"}}

	w := post(svc, `{"reservationId":"7b0c3c8e-4d55-4c3a-9a55-1d0d0b3f6a11"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"clientSecret":"pi_1_secret","paymentIntentId":"pi_1","amount":5000,"currency":"cad"}`, w.Body.String())
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{payments.ErrInvalidInput, http.StatusBadRequest},
		{payments.ErrReservationNotFound, http.StatusNotFound},
		{payments.ErrDepositNotRequired, http.StatusConflict},
		{payments.ErrPaymentsDisabled, http.StatusServiceUnavailable},
		{errors.New("stripe down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := post(&fakeService{err: tt.err}, `{"reservationId":"x"}`)
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}
