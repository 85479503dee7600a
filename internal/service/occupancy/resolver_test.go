package occupancy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/types"
)

// fakeReservations фильтрует так же, как SQL-запрос репозитория
type fakeReservations struct {
	items []*domain.Reservation
	err   error
	from  types.TimeString
	to    types.TimeString
}

func (f *fakeReservations) ListActiveInWindow(_ context.Context, date time.Time, from, to types.TimeString) ([]*domain.Reservation, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Reservation, 0)
	for _, r := range f.items {
		if !r.Date.Equal(date) || !r.IsActive() {
			continue
		}
		if r.Time.Minutes() > from.Minutes() && r.Time.Minutes() < to.Minutes() {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeDineIns struct {
	items []*domain.DineIn
	at    time.Time
}

func (f *fakeDineIns) ListOccupiedReleasingAfter(_ context.Context, at time.Time) ([]*domain.DineIn, error) {
	f.at = at
	out := make([]*domain.DineIn, 0)
	for _, d := range f.items {
		if d.IsOccupyingAt(at) {
			out = append(out, d)
		}
	}
	return out, nil
}

var testDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func reservationAt(t types.TimeString, status domain.ReservationStatus, tables ...int64) *domain.Reservation {
	return &domain.Reservation{Date: testDate, Time: t, Status: status, TableIDs: tables, PartySize: 2}
}

func TestWindow(t *testing.T) {
	from, to := Window("19:00")
	assert.Equal(t, types.TimeString("17:31"), from)
	assert.Equal(t, types.TimeString("20:29"), to)

	from, _ = Window("01:00")
	assert.Equal(t, types.TimeString("00:00"), from)

	_, to = Window("23:30")
	assert.Equal(t, types.TimeString("23:59"), to)
}

func TestResolve_WindowIsExclusive(t *testing.T) {
	reservations := &fakeReservations{items: []*domain.Reservation{
		reservationAt("17:32", domain.StatusConfirmed, 1),
		reservationAt("20:28", domain.StatusConfirmed, 2),
		reservationAt("17:31", domain.StatusConfirmed, 3),
		reservationAt("20:29", domain.StatusConfirmed, 4),
	}}
	r := NewResolver(reservations, &fakeDineIns{}, time.UTC)

	occupied, err := r.OccupiedTableIDs(context.Background(), testDate, "19:00")
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, occupied.Sorted())
	assert.False(t, occupied.Has(3), "17:31 lies on the window bound")
	assert.False(t, occupied.Has(4), "20:29 lies on the window bound")
	assert.Equal(t, types.TimeString("17:31"), reservations.from)
	assert.Equal(t, types.TimeString("20:29"), reservations.to)
}

func TestResolve_IgnoresCancelledAndNoShow(t *testing.T) {
	reservations := &fakeReservations{items: []*domain.Reservation{
		reservationAt("19:00", domain.StatusCancelled, 1),
		reservationAt("19:00", domain.StatusNoShow, 2),
		reservationAt("19:00", domain.StatusSeated, 3),
	}}
	r := NewResolver(reservations, &fakeDineIns{}, time.UTC)

	occupied, err := r.OccupiedTableIDs(context.Background(), testDate, "19:00")
	require.NoError(t, err)

	assert.Equal(t, []int64{3}, occupied.Sorted())
}

func TestResolve_DineInsAndDuplicatesCollapse(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	instant := time.Date(2026, 3, 1, 19, 0, 0, 0, loc)

	dineIns := &fakeDineIns{items: []*domain.DineIn{
		{TableIDs: []int64{7, 8}, Status: domain.DineInOccupied, EstimatedReleaseAt: instant.Add(time.Minute)},
		{TableIDs: []int64{9}, Status: domain.DineInOccupied, EstimatedReleaseAt: instant},
		{TableIDs: []int64{10}, Status: domain.DineInReleased, EstimatedReleaseAt: instant.Add(time.Hour)},
	}}
	reservations := &fakeReservations{items: []*domain.Reservation{
		reservationAt("18:30", domain.StatusConfirmed, 7),
	}}
	r := NewResolver(reservations, dineIns, loc)

	occ, err := r.Resolve(context.Background(), testDate, "19:00")
	require.NoError(t, err)

	assert.Equal(t, []int64{7, 8}, occ.TableIDs.Sorted())
	assert.True(t, dineIns.at.Equal(instant))
	assert.Len(t, occ.DineIns, 1)
	assert.Len(t, occ.Reservations, 1)
}

func TestResolve_PropagatesReadError(t *testing.T) {
	r := NewResolver(&fakeReservations{err: errors.New("connection reset")}, &fakeDineIns{}, time.UTC)

	_, err := r.Resolve(context.Background(), testDate, "19:00")
	assert.ErrorIs(t, err, ErrRead)
}

func TestResolve_InvalidTime(t *testing.T) {
	r := NewResolver(&fakeReservations{}, &fakeDineIns{}, time.UTC)

	_, err := r.Resolve(context.Background(), testDate, "7pm")
	assert.ErrorIs(t, err, ErrInvalidTime)
}
