package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/internal/service/locks"
	"github.com/m04kA/TableReservationService/pkg/logger"
	"github.com/m04kA/TableReservationService/pkg/txmanager"
	"github.com/m04kA/TableReservationService/pkg/types"
)

type fakeRepo struct {
	created []*domain.Reservation
	err     error
}

func (f *fakeRepo) Create(_ context.Context, res *domain.Reservation) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, res)
	return nil
}

type fakeCatalog struct{}

func (fakeCatalog) ListTables(_ context.Context) ([]*domain.Table, error) {
	tables := make([]*domain.Table, 0, 14)
	for id := int64(1); id <= 14; id++ {
		tables = append(tables, &domain.Table{ID: id, CapacityMax: 4})
	}
	return tables, nil
}

type fakeOccupancy struct {
	occupied domain.TableSet
}

func (f *fakeOccupancy) OccupiedTableIDs(_ context.Context, _ time.Time, _ types.TimeString) (domain.TableSet, error) {
	if f.occupied == nil {
		return domain.NewTableSet(), nil
	}
	return f.occupied, nil
}

type fakeAssigner struct {
	assignment *domain.Assignment
	err        error
	calls      int
}

func (f *fakeAssigner) Assign(_ context.Context, _ int, _ time.Time, _ types.TimeString) (*domain.Assignment, error) {
	f.calls++
	return f.assignment, f.err
}

type fakeLocks struct {
	claimed []int64
	holder  string
	err     error
}

func (f *fakeLocks) ClaimFor(_ context.Context, tableIDs []int64, holder string) error {
	if f.err != nil {
		return f.err
	}
	f.claimed = tableIDs
	f.holder = holder
	return nil
}

type sent struct {
	to   string
	kind domain.NotificationKind
}

type fakeNotifier struct {
	sent []sent
}

func (f *fakeNotifier) Send(_ context.Context, to string, kind domain.NotificationKind, _ map[string]interface{}) {
	f.sent = append(f.sent, sent{to: to, kind: kind})
}

type fakeTx struct {
	err error
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var restaurantZone = time.FixedZone("EST", -5*60*60)

type env struct {
	repo      *fakeRepo
	occupancy *fakeOccupancy
	assigner  *fakeAssigner
	locks     *fakeLocks
	notifier  *fakeNotifier
	tx        *fakeTx
	uc        *UseCase
}

// now: 5 марта 03:00 UTC, в зоне ресторана еще 4 марта
func newEnv() *env {
	e := &env{
		repo:      &fakeRepo{},
		occupancy: &fakeOccupancy{},
		assigner:  &fakeAssigner{},
		locks:     &fakeLocks{},
		notifier:  &fakeNotifier{},
		tx:        &fakeTx{},
	}
	opts := Options{
		MaxPartySize:        domain.MaxPartySize,
		DepositMinPartySize: domain.DepositMinPartySize,
		Location:            restaurantZone,
		BridgeTables:        []int64{10, 12},
	}
	e.uc = NewUseCase(e.repo, fakeCatalog{}, e.occupancy, e.assigner, e.locks, e.notifier, e.tx, opts, logger.NewNop()).
		WithTimeProvider(fixedClock{now: time.Date(2026, 3, 5, 3, 0, 0, 0, time.UTC)})
	return e
}

func validRequest() *Request {
	return &Request{
		CustomerName: "Ada Lovelace",
		Email:        "ada@example.com",
		PartySize:    4,
		Date:         time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		Time:         "19:00",
		TableIDs:     []int64{1},
	}
}

func TestExecute_Confirmed(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.RequiresDeposit)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.Len(t, e.repo.created, 1)
	created := e.repo.created[0]
	assert.Equal(t, resp.ReservationID, created.ID)
	assert.Equal(t, domain.CreatedByCustomer, created.CreatedBy)
	assert.Equal(t, domain.ReservationHolder(created.ID), e.locks.holder)
	assert.Equal(t, []int64{1}, e.locks.claimed)

	require.Len(t, e.notifier.sent, 1)
	assert.Equal(t, sent{to: "ada@example.com", kind: domain.NotifyReservationConfirmation}, e.notifier.sent[0])
}

func TestExecute_DepositRule(t *testing.T) {
	tests := []struct {
		name       string
		partySize  int
		waive      bool
		wantStatus domain.ReservationStatus
		wantKind   domain.NotificationKind
	}{
		{"nine guests", 9, false, domain.StatusConfirmed, domain.NotifyReservationConfirmation},
		{"ten guests", 10, false, domain.StatusDepositRequired, domain.NotifyDepositRequired},
		{"ten guests waived", 10, true, domain.StatusConfirmed, domain.NotifyReservationConfirmation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest()
			req.PartySize = tt.partySize
			req.WaiveDeposit = tt.waive
			req.IsAdmin = tt.waive

			resp, err := e.uc.Execute(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus == domain.StatusDepositRequired, resp.RequiresDeposit)
			require.Len(t, e.repo.created, 1)
			assert.Equal(t, tt.wantStatus, e.repo.created[0].Status)
			require.Len(t, e.notifier.sent, 1)
			assert.Equal(t, tt.wantKind, e.notifier.sent[0].kind)
		})
	}
}

func TestExecute_AdminFlag(t *testing.T) {
	e := newEnv()
	req := validRequest()
	req.IsAdmin = true

	_, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.CreatedByAdmin, e.repo.created[0].CreatedBy)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"short name", func(r *Request) { r.CustomerName = "A" }, ErrInvalidInput},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }, ErrInvalidInput},
		{"zero guests", func(r *Request) { r.PartySize = 0 }, ErrInvalidInput},
		{"too many guests", func(r *Request) { r.PartySize = 39 }, ErrPartyTooLarge},
		{"no tables", func(r *Request) { r.TableIDs = []int64{} }, ErrInvalidInput},
		{"malformed time", func(r *Request) { r.Time = "7pm" }, ErrInvalidInput},
		{"past date", func(r *Request) { r.Date = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC) }, ErrDateInPast},
		{"off-grid time", func(r *Request) { r.Time = "19:15" }, ErrInvalidTimeSlot},
		{"after last slot", func(r *Request) { r.Time = "22:00" }, ErrInvalidTimeSlot},
		{"unknown table", func(r *Request) { r.TableIDs = []int64{99} }, ErrTableNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest()
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, e.repo.created)
			assert.Empty(t, e.notifier.sent)
		})
	}
}

func TestExecute_TodayInRestaurantZone(t *testing.T) {
	e := newEnv()
	req := validRequest()
	// в UTC уже 5 марта, но в ресторане 4 марта
	req.Date = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	_, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_OccupiedTables(t *testing.T) {
	e := newEnv()
	e.occupancy.occupied = domain.NewTableSet(1)

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTablesUnavailable)
	assert.Empty(t, e.repo.created)
	assert.Nil(t, e.locks.claimed)
}

func TestExecute_LockConflict(t *testing.T) {
	e := newEnv()
	e.locks.err = fmt.Errorf("%w: tables [1]", locks.ErrLockConflict)

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTablesUnavailable)
	assert.Empty(t, e.repo.created)
	assert.Empty(t, e.notifier.sent)
}

func TestExecute_SerializationFailure(t *testing.T) {
	e := newEnv()
	e.tx.err = fmt.Errorf("%w: commit", txmanager.ErrSerialization)

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTablesUnavailable)
	assert.Empty(t, e.notifier.sent)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	e := newEnv()
	e.repo.err = errors.New("insert failed")

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func comboWithReallocation() *domain.Assignment {
	return &domain.Assignment{
		TableIDs:             []int64{11, 12, 13},
		IsCombo:              true,
		RequiresReallocation: true,
	}
}

func TestExecute_ReallocationLeavesBridgeToBlocker(t *testing.T) {
	e := newEnv()
	e.occupancy.occupied = domain.NewTableSet(12)
	e.assigner.assignment = comboWithReallocation()

	req := validRequest()
	req.PartySize = 30
	req.TableIDs = []int64{11, 12, 13}
	req.RequiresReallocation = true
	req.WaiveDeposit = true

	_, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []int64{11, 13}, e.locks.claimed)
	require.Len(t, e.repo.created, 1)
	assert.True(t, e.repo.created[0].RequiresReallocation)
	assert.Equal(t, []int64{11, 12, 13}, e.repo.created[0].TableIDs)
}

func TestExecute_ReallocationFlagRejectedForOccupiedTable(t *testing.T) {
	e := newEnv()
	e.occupancy.occupied = domain.NewTableSet(1)

	req := validRequest()
	req.RequiresReallocation = true

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTablesUnavailable)
	assert.Empty(t, e.repo.created)
	assert.Nil(t, e.locks.claimed)
	assert.Empty(t, e.notifier.sent)
}

func TestExecute_ReallocationFlagRequiresEngineAgreement(t *testing.T) {
	tests := []struct {
		name       string
		assignment *domain.Assignment
	}{
		{"no assignment", nil},
		{"combo is free", &domain.Assignment{TableIDs: []int64{11, 12, 13}, IsCombo: true}},
		{"other tables", &domain.Assignment{TableIDs: []int64{9, 10, 11}, IsCombo: true, RequiresReallocation: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			e.occupancy.occupied = domain.NewTableSet(12)
			e.assigner.assignment = tt.assignment

			req := validRequest()
			req.PartySize = 30
			req.TableIDs = []int64{11, 12, 13}
			req.RequiresReallocation = true
			req.WaiveDeposit = true

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrTablesUnavailable)
			assert.Equal(t, 1, e.assigner.calls)
			assert.Empty(t, e.repo.created)
			assert.Nil(t, e.locks.claimed)
		})
	}
}

func TestExecute_ReallocationAssignerFailure(t *testing.T) {
	e := newEnv()
	e.occupancy.occupied = domain.NewTableSet(12)
	e.assigner.err = errors.New("catalog down")

	req := validRequest()
	req.PartySize = 30
	req.TableIDs = []int64{11, 12, 13}
	req.RequiresReallocation = true

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, e.repo.created)
}

func TestExecute_WithoutFlagSkipsAssigner(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Zero(t, e.assigner.calls)
}
