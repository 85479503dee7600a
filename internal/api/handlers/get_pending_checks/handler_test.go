package get_pending_checks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/logger"
)

type fakeService struct {
	checks []*domain.TableCheck
	err    error
	now    time.Time
}

func (f *fakeService) ListPending(_ context.Context, now time.Time) ([]*domain.TableCheck, error) {
	f.now = now
	return f.checks, f.err
}

func TestHandle_ListsChecks(t *testing.T) {
	now := time.Date(2026, 3, 6, 23, 0, 0, 0, time.UTC)
	dineInID := uuid.New()
	check := &domain.TableCheck{
		ID:           uuid.New(),
		CheckSubject: domain.DineInSubject(dineInID),
		PromptedAt:   now.Add(-5 * time.Minute),
	}
	svc := &fakeService{checks: []*domain.TableCheck{check}}
	h := NewHandler(svc, logger.NewNop())
	h.now = func() time.Time { return now }

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/checks/pending", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"checks":[{"id":%q,"kind":"dine_in","dineInId":%q,"promptedAt":"2026-03-06T22:55:00Z"}],"total":1}`,
		check.ID, dineInID), w.Body.String())
	assert.Equal(t, now, svc.now)
}

func TestHandle_Empty(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/checks/pending", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"checks":[],"total":0}`, w.Body.String())
}

func TestHandle_Error(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("boom")}, logger.NewNop()).
		Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/checks/pending", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
