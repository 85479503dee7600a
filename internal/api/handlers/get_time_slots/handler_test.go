package get_time_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getTimeSlots "github.com/m04kA/TableReservationService/internal/usecase/get_time_slots"
	"github.com/m04kA/TableReservationService/pkg/logger"
)

type fakeUseCase struct {
	resp *getTimeSlots.Response
	err  error
	got  *getTimeSlots.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getTimeSlots.Request) (*getTimeSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func TestHandle_ReturnsSlotArray(t *testing.T) {
	uc := &fakeUseCase{resp: &getTimeSlots.Response{Slots: []getTimeSlots.Slot{
		{Time: "11:30", Available: true},
		{Time: "12:00", Available: false},
	}}}
	h := NewHandler(uc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/time-slots?date=2026-03-06&partySize=4", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"time":"11:30","available":true},{"time":"12:00","available":false}]`, w.Body.String())
	assert.Equal(t, 4, uc.got.PartySize)
	assert.Equal(t, "2026-03-06", uc.got.Date.Format("2006-01-02"))
}

func TestHandle_EmptyGridIsArray(t *testing.T) {
	h := NewHandler(&fakeUseCase{resp: &getTimeSlots.Response{}}, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/time-slots?date=2026-03-06&partySize=4", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandle_BadQuery(t *testing.T) {
	tests := []struct {
		name string
		url  string
		err  error
	}{
		{"missing date", "/api/v1/reservations/time-slots?partySize=4", nil},
		{"bad party size", "/api/v1/reservations/time-slots?date=2026-03-06&partySize=four", nil},
		{"rejected by usecase", "/api/v1/reservations/time-slots?date=2026-03-06&partySize=0", getTimeSlots.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandle_StoreUnavailable(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: getTimeSlots.ErrInternal}, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/time-slots?date=2026-03-06&partySize=4", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
