package get_reallocation_alerts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TableReservationService/internal/domain"
	scanAlerts "github.com/m04kA/TableReservationService/internal/usecase/scan_reallocation_alerts"
	"github.com/m04kA/TableReservationService/pkg/logger"
)

type fakeUseCase struct {
	resp *scanAlerts.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context) (*scanAlerts.Response, error) {
	return f.resp, f.err
}

func get(uc ScanAlertsUseCase) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/reallocation-alerts", nil))
	return w
}

func TestHandle_Alerts(t *testing.T) {
	large := &domain.Reservation{
		ID:           uuid.New(),
		CustomerName: "Big Party",
		PartySize:    20,
		Date:         time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		Time:         "19:00",
		TableIDs:     []int64{11, 13},
		Status:       domain.StatusConfirmed,
	}
	dineInID := uuid.New()
	resp := &scanAlerts.Response{Alerts: []domain.ReallocationAlert{
		{
			ID:             domain.AlertID(large.ID, 12),
			Reservation:    large,
			BlockerTableID: 12,
			Blocker: domain.BlockerParty{
				ID:        dineInID.String(),
				Type:      domain.BlockerDineIn,
				Name:      domain.WalkInGuestName,
				PartySize: 4,
				TableIDs:  []int64{12},
			},
			SuggestedMove: []int64{3},
		},
		{
			ID:             domain.AlertID(large.ID, 14),
			Reservation:    large,
			BlockerTableID: 14,
			Blocker:        domain.BlockerParty{ID: "x", Type: domain.BlockerUnknown, Name: domain.UnknownGuestName},
		},
	}}

	w := get(&fakeUseCase{resp: resp})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Alerts []map[string]json.RawMessage `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Alerts, 2)

	assert.JSONEq(t, `"`+large.ID.String()+`_12"`, string(body.Alerts[0]["id"]))
	assert.JSONEq(t, `12`, string(body.Alerts[0]["blockerTableId"]))
	assert.JSONEq(t, `[3]`, string(body.Alerts[0]["suggestedMove"]))
	assert.JSONEq(t, `{"id":"`+dineInID.String()+`","type":"dine_in","name":"`+domain.WalkInGuestName+`","partySize":4,"tableIds":[12]}`,
		string(body.Alerts[0]["blocker"]))

	assert.JSONEq(t, `null`, string(body.Alerts[1]["suggestedMove"]))
	assert.JSONEq(t, `{"id":"x","type":"unknown","name":"Unknown Guest","partySize":0,"tableIds":[]}`, string(body.Alerts[1]["blocker"]))
}

func TestHandle_NoAlerts(t *testing.T) {
	w := get(&fakeUseCase{resp: &scanAlerts.Response{}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"alerts":[]}`, w.Body.String())
}

func TestHandle_Error(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, get(&fakeUseCase{err: errors.New("boom")}).Code)
}
