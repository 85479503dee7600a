package seat_reservation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TableReservationService/internal/service/reservations"
	"github.com/m04kA/TableReservationService/pkg/logger"
)

type fakeService struct {
	err    error
	called uuid.UUID
}

func (f *fakeService) Seat(_ context.Context, id uuid.UUID) error {
	f.called = id
	return f.err
}

func post(svc ReservationService, id string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reservations/"+id+"/seat", nil)
	r = mux.SetURLVars(r, map[string]string{"reservationId": id})
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, r)
	return w
}

func TestHandle_NoContent(t *testing.T) {
	id := uuid.New()
	svc := &fakeService{}

	w := post(svc, id.String())

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, id, svc.called)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		err  error
		want int
	}{
		{"bad id", "42", nil, http.StatusBadRequest},
		{"not found", uuid.NewString(), reservations.ErrReservationNotFound, http.StatusNotFound},
		{"wrong status", uuid.NewString(), fmt.Errorf("%w: status=completed", reservations.ErrCannotSeat), http.StatusConflict},
		{"internal", uuid.NewString(), errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post(&fakeService{err: tt.err}, tt.id).Code)
		})
	}
}
