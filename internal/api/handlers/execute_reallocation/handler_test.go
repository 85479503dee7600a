package execute_reallocation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TableReservationService/internal/domain"
	executeReallocation "github.com/m04kA/TableReservationService/internal/usecase/execute_reallocation"
	"github.com/m04kA/TableReservationService/pkg/logger"
)

type fakeUseCase struct {
	err error
	got *executeReallocation.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *executeReallocation.Request) (*executeReallocation.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &executeReallocation.Response{BlockerID: req.BlockerID, TableIDs: req.ToTableIDs}, nil
}

func body(blockerID, largeID uuid.UUID) string {
	return fmt.Sprintf(`{"blockerId":%q,"blockerType":"dine_in","fromTableIds":[12],"toTableIds":[3],"largeReservationId":%q}`,
		blockerID, largeID)
}

func post(uc ExecuteReallocationUseCase, b string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/reallocation/execute", strings.NewReader(b)))
	return w
}

func TestHandle_Moved(t *testing.T) {
	blockerID, largeID := uuid.New(), uuid.New()
	uc := &fakeUseCase{}

	w := post(uc, body(blockerID, largeID))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"blockerId":%q,"tableIds":[3]}`, blockerID), w.Body.String())
	assert.Equal(t, domain.BlockerDineIn, uc.got.BlockerType)
	assert.Equal(t, largeID, uc.got.LargeReservationID)
	assert.Equal(t, []int64{12}, uc.got.FromTableIDs)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"targets locked", executeReallocation.ErrTargetsOccupied, http.StatusConflict},
		{"no reservation", executeReallocation.ErrReservationNotFound, http.StatusNotFound},
		{"no blocker", executeReallocation.ErrBlockerNotFound, http.StatusNotFound},
		{"no table", executeReallocation.ErrTableNotFound, http.StatusNotFound},
		{"invalid", executeReallocation.ErrInvalidInput, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post(&fakeUseCase{err: tt.err}, body(uuid.New(), uuid.New())).Code)
		})
	}
}

func TestHandle_BadIDs(t *testing.T) {
	uc := &fakeUseCase{}

	w := post(uc, `{"blockerId":"abc","blockerType":"dine_in","fromTableIds":[12],"toTableIds":[3],"largeReservationId":"def"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.got)
}
