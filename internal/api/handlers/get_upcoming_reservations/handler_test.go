package get_upcoming_reservations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TableReservationService/internal/service/reservations/models"
	"github.com/m04kA/TableReservationService/pkg/logger"
)

type fakeService struct {
	resp *models.ReservationListResponse
	err  error
}

func (f *fakeService) ListUpcoming(_ context.Context) (*models.ReservationListResponse, error) {
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.ReservationListResponse{Reservations: []models.ReservationResponse{}, Total: 0}}
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations/upcoming", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reservations":[],"total":0}`, w.Body.String())

	w = httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("boom")}, logger.NewNop()).
		Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations/upcoming", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
