package run_sweep

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TableReservationService/internal/scheduler"
	"github.com/m04kA/TableReservationService/pkg/logger"
)

func post(runner SweepRunner, job string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/cron/"+job, nil)
	r = mux.SetURLVars(r, map[string]string{"job": job})
	w := httptest.NewRecorder()
	NewHandler(runner, logger.NewNop()).Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	s := scheduler.New(time.Minute, logger.NewNop(),
		scheduler.Job{Name: "expire-reservations", Run: func(context.Context, time.Time) (int, error) { return 2, nil }},
		scheduler.Job{Name: "reminders", Run: func(context.Context, time.Time) (int, error) { return 0, errors.New("smtp down") }},
	)

	w := post(s, "expire-reservations")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"processed":2}`, w.Body.String())

	assert.Equal(t, http.StatusInternalServerError, post(s, "reminders").Code)
	assert.Equal(t, http.StatusNotFound, post(s, "table-cleanup").Code)
}
