package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TableReservationService/pkg/logger"
)

func serve(deps map[string]Pinger) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(deps, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	return w
}

func TestHandle_AllHealthy(t *testing.T) {
	up := PingFunc(func(context.Context) error { return nil })

	w := serve(map[string]Pinger{"postgres": up, "redis": up})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"postgres":"ok","redis":"ok"}}`, w.Body.String())
}

func TestHandle_Degraded(t *testing.T) {
	w := serve(map[string]Pinger{
		"postgres": PingFunc(func(context.Context) error { return nil }),
		"redis":    PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"postgres":"ok","redis":"unavailable"}}`, w.Body.String())
}
