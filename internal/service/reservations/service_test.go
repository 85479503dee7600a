package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TableReservationService/internal/domain"
	reservationRepo "github.com/m04kA/TableReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/TableReservationService/pkg/logger"
	"github.com/m04kA/TableReservationService/pkg/types"
)

type fakeRepo struct {
	items map[uuid.UUID]*domain.Reservation
}

func (f *fakeRepo) add(r *domain.Reservation) *domain.Reservation {
	f.items[r.ID] = r
	return r
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListByDate(_ context.Context, date time.Time) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.items {
		if r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListForReminder(_ context.Context, date time.Time) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.items {
		if r.Date.Equal(date) && (r.Status == domain.StatusConfirmed || r.Status == domain.StatusDepositPaid) && r.ReminderSentAt == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListForReview(_ context.Context, seatedBefore time.Time) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.items {
		if r.Status == domain.StatusSeated && r.SeatedAt != nil && !r.SeatedAt.After(seatedBefore) && r.ReviewSentAt == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatusFrom(_ context.Context, id uuid.UUID, from []domain.ReservationStatus, to domain.ReservationStatus) (bool, error) {
	r := f.items[id]
	for _, s := range from {
		if r.Status == s {
			r.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) MarkSeated(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r := f.items[id]
	if !r.CanBeSeated() {
		return false, nil
	}
	r.Status = domain.StatusSeated
	r.SeatedAt = &at
	return true, nil
}

func (f *fakeRepo) ClaimReminder(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r := f.items[id]
	if r.ReminderSentAt != nil {
		return false, nil
	}
	r.ReminderSentAt = &at
	return true, nil
}

func (f *fakeRepo) ClaimReview(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r := f.items[id]
	if r.ReviewSentAt != nil {
		return false, nil
	}
	r.ReviewSentAt = &at
	return true, nil
}

type fakeLocks struct{ released []string }

func (f *fakeLocks) ReleaseHeld(_ context.Context, _ []int64, holder string) (int64, error) {
	f.released = append(f.released, holder)
	return 1, nil
}

type fakeChecks struct{ scheduled []domain.CheckSubject }

func (f *fakeChecks) Schedule(_ context.Context, subject domain.CheckSubject, now time.Time) (*domain.TableCheck, error) {
	f.scheduled = append(f.scheduled, subject)
	return &domain.TableCheck{ID: uuid.New(), CheckSubject: subject, PromptedAt: now.Add(domain.CheckInterval)}, nil
}

type fakeNotifier struct{ kinds []domain.NotificationKind }

func (f *fakeNotifier) Send(_ context.Context, _ string, kind domain.NotificationKind, _ map[string]interface{}) {
	f.kinds = append(f.kinds, kind)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type nopMetrics struct{}

func (nopMetrics) ObserveSweep(string, int) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// 18:00 в Торонто
var now = time.Date(2026, 10, 23, 22, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	repo     *fakeRepo
	locks    *fakeLocks
	checks   *fakeChecks
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)

	f := &fixture{
		repo:     &fakeRepo{items: map[uuid.UUID]*domain.Reservation{}},
		locks:    &fakeLocks{},
		checks:   &fakeChecks{},
		notifier: &fakeNotifier{},
	}
	f.svc = NewService(f.repo, f.locks, f.checks, f.notifier, passthroughTx{}, nopMetrics{}, loc, domain.ReviewDelay, logger.NewNop()).
		WithTimeProvider(fixedClock{now: now})
	return f
}

func reservationOn(date time.Time, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:           uuid.New(),
		CustomerName: "Grace",
		Email:        "grace@example.com",
		PartySize:    4,
		Date:         date,
		Time:         types.TimeString("19:00"),
		TableIDs:     []int64{2},
		Status:       status,
		CreatedBy:    domain.CreatedByCustomer,
	}
}

var (
	today    = time.Date(2026, 10, 23, 0, 0, 0, 0, time.UTC)
	tomorrow = today.AddDate(0, 0, 1)
)

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	r := f.repo.add(reservationOn(today, domain.StatusConfirmed))

	resp, err := f.svc.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-23", resp.Date)
	assert.Equal(t, "19:00", resp.Time)

	_, err = f.svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	r := f.repo.add(reservationOn(today, domain.StatusDepositRequired))

	require.NoError(t, f.svc.Cancel(context.Background(), r.ID))
	assert.Equal(t, domain.StatusCancelled, r.Status)
	assert.Equal(t, []string{domain.ReservationHolder(r.ID)}, f.locks.released)

	assert.ErrorIs(t, f.svc.Cancel(context.Background(), r.ID), ErrCannotCancel)
}

func TestCancel_SeatedIsRejected(t *testing.T) {
	f := newFixture(t)
	r := f.repo.add(reservationOn(today, domain.StatusSeated))

	assert.ErrorIs(t, f.svc.Cancel(context.Background(), r.ID), ErrCannotCancel)
	assert.Empty(t, f.locks.released)
}

func TestSeat_SchedulesFirstCheck(t *testing.T) {
	f := newFixture(t)
	r := f.repo.add(reservationOn(today, domain.StatusDepositPaid))

	require.NoError(t, f.svc.Seat(context.Background(), r.ID))

	assert.Equal(t, domain.StatusSeated, r.Status)
	require.NotNil(t, r.SeatedAt)
	assert.Equal(t, now, *r.SeatedAt)
	require.Len(t, f.checks.scheduled, 1)
	assert.Equal(t, domain.CheckReservation, f.checks.scheduled[0].Kind)
}

func TestSeat_DepositRequiredIsRejected(t *testing.T) {
	f := newFixture(t)
	r := f.repo.add(reservationOn(today, domain.StatusDepositRequired))

	assert.ErrorIs(t, f.svc.Seat(context.Background(), r.ID), ErrCannotSeat)
	assert.Empty(t, f.checks.scheduled)
}

func TestListUpcoming_UsesRestaurantDate(t *testing.T) {
	f := newFixture(t)
	f.repo.add(reservationOn(today, domain.StatusConfirmed))
	f.repo.add(reservationOn(today, domain.StatusCancelled))
	f.repo.add(reservationOn(tomorrow, domain.StatusConfirmed))

	resp, err := f.svc.ListUpcoming(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestSendReminders_OncePerReservation(t *testing.T) {
	f := newFixture(t)
	f.repo.add(reservationOn(tomorrow, domain.StatusConfirmed))
	f.repo.add(reservationOn(tomorrow, domain.StatusDepositPaid))
	f.repo.add(reservationOn(tomorrow, domain.StatusDepositRequired))
	f.repo.add(reservationOn(today, domain.StatusConfirmed))

	n, err := f.svc.SendReminders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = f.svc.SendReminders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Len(t, f.notifier.kinds, 2)
}

func TestSendReviewRequests(t *testing.T) {
	f := newFixture(t)
	longAgo := now.Add(-3 * time.Hour)
	recent := now.Add(-30 * time.Minute)

	old := reservationOn(today, domain.StatusSeated)
	old.SeatedAt = &longAgo
	f.repo.add(old)

	fresh := reservationOn(today, domain.StatusSeated)
	fresh.SeatedAt = &recent
	f.repo.add(fresh)

	n, err := f.svc.SendReviewRequests(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []domain.NotificationKind{domain.NotifyReviewRequest}, f.notifier.kinds)

	n, err = f.svc.SendReviewRequests(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
