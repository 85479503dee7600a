package locks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/logger"
)

type fakeLocks struct {
	rows map[int64]*domain.TableLock
}

func newFakeLocks() *fakeLocks {
	return &fakeLocks{rows: map[int64]*domain.TableLock{}}
}

func (f *fakeLocks) Upsert(_ context.Context, tableIDs []int64, holder string, until time.Time) error {
	for _, id := range domain.DistinctIDs(tableIDs) {
		f.rows[id] = &domain.TableLock{TableID: id, HolderID: holder, LockedUntil: until}
	}
	return nil
}

func (f *fakeLocks) Acquire(_ context.Context, tableIDs []int64, holder string, until, now time.Time) ([]int64, error) {
	var acquired []int64
	for _, id := range tableIDs {
		cur, ok := f.rows[id]
		if ok && cur.HolderID != holder && cur.LockedUntil.After(now) {
			continue
		}
		f.rows[id] = &domain.TableLock{TableID: id, HolderID: holder, LockedUntil: until}
		acquired = append(acquired, id)
	}
	return acquired, nil
}

func (f *fakeLocks) ListByTableIDs(_ context.Context, tableIDs []int64) ([]*domain.TableLock, error) {
	var out []*domain.TableLock
	for _, id := range tableIDs {
		if l, ok := f.rows[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLocks) DeleteByTableIDs(_ context.Context, tableIDs []int64) (int64, error) {
	var n int64
	for _, id := range tableIDs {
		if _, ok := f.rows[id]; ok {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeLocks) DeleteByTablesAndHolder(_ context.Context, tableIDs []int64, holder string) (int64, error) {
	var n int64
	for _, id := range tableIDs {
		if l, ok := f.rows[id]; ok && l.HolderID == holder {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeLocks) ExtendHolder(_ context.Context, holder string, until time.Time) (int64, error) {
	var n int64
	for _, l := range f.rows {
		if l.HolderID == holder {
			l.LockedUntil = until
			n++
		}
	}
	return n, nil
}

type fakeReservations struct {
	items   []*domain.Reservation
	listErr error
	failID  uuid.UUID
}

func (f *fakeReservations) ListStaleDepositRequired(_ context.Context, createdBefore time.Time) ([]*domain.Reservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Reservation
	for _, r := range f.items {
		if r.Status == domain.StatusDepositRequired && r.CreatedAt.Before(createdBefore) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservations) UpdateStatusFrom(_ context.Context, id uuid.UUID, from []domain.ReservationStatus, to domain.ReservationStatus) (bool, error) {
	if id == f.failID {
		return false, errors.New("connection reset")
	}
	for _, r := range f.items {
		if r.ID != id {
			continue
		}
		for _, s := range from {
			if r.Status == s {
				r.Status = to
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

type fakeMetrics struct {
	conflicts int
	sweeps    map[string]int
}

func (m *fakeMetrics) ObserveLockConflict() { m.conflicts++ }

func (m *fakeMetrics) ObserveSweep(sweep string, processed int) {
	if m.sweeps == nil {
		m.sweeps = map[string]int{}
	}
	m.sweeps[sweep] += processed
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var now = time.Date(2026, 10, 23, 18, 0, 0, 0, time.UTC)

func newManager(l *fakeLocks, r *fakeReservations, m *fakeMetrics) *Manager {
	return NewManager(l, r, m, DefaultOptions(), logger.NewNop()).WithTimeProvider(fixedClock{now: now})
}

func TestLock_IdempotentOneRowPerTable(t *testing.T) {
	l := newFakeLocks()
	m := newManager(l, &fakeReservations{}, &fakeMetrics{})

	require.NoError(t, m.Lock(context.Background(), []int64{3, 3, 5}, "res-1"))
	require.NoError(t, m.Lock(context.Background(), []int64{3, 5}, "res-1"))

	assert.Len(t, l.rows, 2)
	assert.Equal(t, now.Add(domain.LockTTL), l.rows[3].LockedUntil)
}

func TestLock_NoTables(t *testing.T) {
	m := newManager(newFakeLocks(), &fakeReservations{}, &fakeMetrics{})
	assert.ErrorIs(t, m.Lock(context.Background(), nil, "res-1"), ErrNoTables)
}

func TestClaim_FirstWriterWins(t *testing.T) {
	l := newFakeLocks()
	metrics := &fakeMetrics{}
	m := newManager(l, &fakeReservations{}, metrics)
	ctx := context.Background()

	require.NoError(t, m.ClaimFor(ctx, []int64{10, 11}, "res-a"))

	err := m.ClaimFor(ctx, []int64{11, 12}, "res-b")
	assert.ErrorIs(t, err, ErrLockConflict)
	assert.Equal(t, 1, metrics.conflicts)
	assert.Equal(t, "res-a", l.rows[11].HolderID)

	// Тот же владелец может повторить захват
	require.NoError(t, m.ClaimFor(ctx, []int64{10, 11}, "res-a"))
}

func TestClaim_ExpiredLockIsFree(t *testing.T) {
	l := newFakeLocks()
	l.rows[4] = &domain.TableLock{TableID: 4, HolderID: "old", LockedUntil: now.Add(-time.Minute)}
	m := newManager(l, &fakeReservations{}, &fakeMetrics{})

	require.NoError(t, m.Claim(context.Background(), []int64{4}, "new", now.Add(time.Hour)))
	assert.Equal(t, "new", l.rows[4].HolderID)
}

func TestReleaseHeld_OnlyOwnLocks(t *testing.T) {
	l := newFakeLocks()
	m := newManager(l, &fakeReservations{}, &fakeMetrics{})
	ctx := context.Background()

	require.NoError(t, m.Lock(ctx, []int64{1}, "a"))
	require.NoError(t, m.Lock(ctx, []int64{2}, "b"))

	n, err := m.ReleaseHeld(ctx, []int64{1, 2}, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Contains(t, l.rows, int64(2))
}

func TestExpireStale_CancelsOnceAndReleasesScopedLocks(t *testing.T) {
	stale := &domain.Reservation{
		ID:        uuid.New(),
		TableIDs:  []int64{9},
		Status:    domain.StatusDepositRequired,
		CreatedAt: now.Add(-31 * time.Minute),
	}
	fresh := &domain.Reservation{
		ID:        uuid.New(),
		TableIDs:  []int64{13},
		Status:    domain.StatusDepositRequired,
		CreatedAt: now.Add(-10 * time.Minute),
	}
	l := newFakeLocks()
	require.NoError(t, l.Upsert(context.Background(), []int64{9}, domain.ReservationHolder(stale.ID), now.Add(time.Hour)))
	require.NoError(t, l.Upsert(context.Background(), []int64{13}, domain.ReservationHolder(fresh.ID), now.Add(time.Hour)))

	metrics := &fakeMetrics{}
	m := newManager(l, &fakeReservations{items: []*domain.Reservation{stale, fresh}}, metrics)

	n, err := m.ExpireStale(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, domain.StatusCancelled, stale.Status)
	assert.Equal(t, domain.StatusDepositRequired, fresh.Status)
	assert.NotContains(t, l.rows, int64(9))
	assert.Contains(t, l.rows, int64(13))

	n, err = m.ExpireStale(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, metrics.sweeps[SweepExpireReservations])
}

func TestExpireStale_LockHeldByOtherPartySurvives(t *testing.T) {
	stale := &domain.Reservation{
		ID:        uuid.New(),
		TableIDs:  []int64{9},
		Status:    domain.StatusDepositRequired,
		CreatedAt: now.Add(-time.Hour),
	}
	l := newFakeLocks()
	require.NoError(t, l.Upsert(context.Background(), []int64{9}, "someone-else", now.Add(time.Hour)))
	m := newManager(l, &fakeReservations{items: []*domain.Reservation{stale}}, &fakeMetrics{})

	_, err := m.ExpireStale(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", l.rows[9].HolderID)
}

func TestExpireStale_PerRecordFailureIsIsolated(t *testing.T) {
	bad := &domain.Reservation{ID: uuid.New(), Status: domain.StatusDepositRequired, CreatedAt: now.Add(-time.Hour)}
	good := &domain.Reservation{ID: uuid.New(), Status: domain.StatusDepositRequired, CreatedAt: now.Add(-time.Hour)}
	m := newManager(newFakeLocks(), &fakeReservations{items: []*domain.Reservation{bad, good}, failID: bad.ID}, &fakeMetrics{})

	n, err := m.ExpireStale(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, domain.StatusCancelled, good.Status)
}

func TestExpireStale_ListError(t *testing.T) {
	m := newManager(newFakeLocks(), &fakeReservations{listErr: errors.New("down")}, &fakeMetrics{})

	_, err := m.ExpireStale(context.Background(), now)
	assert.ErrorIs(t, err, ErrInternal)
}
