package tablechecks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TableReservationService/internal/domain"
	checkRepo "github.com/m04kA/TableReservationService/internal/infra/storage/tablecheck"
	"github.com/m04kA/TableReservationService/pkg/logger"
)

type fakeChecks struct {
	items map[uuid.UUID]*domain.TableCheck
}

func (f *fakeChecks) Create(_ context.Context, c *domain.TableCheck) error {
	f.items[c.ID] = c
	return nil
}

func (f *fakeChecks) GetByID(_ context.Context, id uuid.UUID) (*domain.TableCheck, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, checkRepo.ErrCheckNotFound
	}
	return c, nil
}

func (f *fakeChecks) ListPromptedBefore(_ context.Context, at time.Time) ([]*domain.TableCheck, error) {
	var out []*domain.TableCheck
	for _, c := range f.items {
		if c.IsPending() && !c.PromptedAt.After(at) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChecks) MarkResponded(_ context.Context, id uuid.UUID, response domain.CheckResponse, at time.Time) (bool, error) {
	c, ok := f.items[id]
	if !ok || !c.IsPending() {
		return false, nil
	}
	c.Response = &response
	c.RespondedAt = &at
	return true, nil
}

func (f *fakeChecks) CloseForSubject(_ context.Context, subject domain.CheckSubject, response domain.CheckResponse, at time.Time) (int64, error) {
	var closed int64
	for _, c := range f.items {
		if !c.IsPending() || !sameSubject(c.CheckSubject, subject) {
			continue
		}
		r := response
		c.Response = &r
		c.RespondedAt = &at
		closed++
	}
	return closed, nil
}

func sameSubject(a, b domain.CheckSubject) bool {
	if a.DineInID != nil && b.DineInID != nil {
		return *a.DineInID == *b.DineInID
	}
	if a.ReservationID != nil && b.ReservationID != nil {
		return *a.ReservationID == *b.ReservationID
	}
	return false
}

func (f *fakeChecks) pending() []*domain.TableCheck {
	var out []*domain.TableCheck
	for _, c := range f.items {
		if c.IsPending() {
			out = append(out, c)
		}
	}
	return out
}

type fakeDineIns struct {
	items map[uuid.UUID]*domain.DineIn
}

func (f *fakeDineIns) GetByID(_ context.Context, id uuid.UUID) (*domain.DineIn, error) {
	return f.items[id], nil
}

func (f *fakeDineIns) Release(_ context.Context, id uuid.UUID) (bool, error) {
	d := f.items[id]
	if d.Status != domain.DineInOccupied {
		return false, nil
	}
	d.Status = domain.DineInReleased
	return true, nil
}

func (f *fakeDineIns) ExtendRelease(_ context.Context, id uuid.UUID, d time.Duration) error {
	f.items[id].EstimatedReleaseAt = f.items[id].EstimatedReleaseAt.Add(d)
	return nil
}

type fakeReservations struct {
	items map[uuid.UUID]*domain.Reservation
}

func (f *fakeReservations) GetByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	return f.items[id], nil
}

func (f *fakeReservations) UpdateStatusFrom(_ context.Context, id uuid.UUID, from []domain.ReservationStatus, to domain.ReservationStatus) (bool, error) {
	r := f.items[id]
	for _, s := range from {
		if r.Status == s {
			r.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservations) ClaimReview(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r := f.items[id]
	if r.ReviewSentAt != nil {
		return false, nil
	}
	r.ReviewSentAt = &at
	return true, nil
}

type fakeLocks struct {
	released []string
	extended map[string]time.Time
}

func (f *fakeLocks) ReleaseHeld(_ context.Context, _ []int64, holder string) (int64, error) {
	f.released = append(f.released, holder)
	return 1, nil
}

func (f *fakeLocks) Extend(_ context.Context, holder string, until time.Time) (int64, error) {
	f.extended[holder] = until
	return 1, nil
}

type fakeNotifier struct {
	sent []domain.NotificationKind
}

func (f *fakeNotifier) Send(_ context.Context, _ string, kind domain.NotificationKind, _ map[string]interface{}) {
	f.sent = append(f.sent, kind)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopMetrics struct{}

func (nopMetrics) ObserveSweep(string, int) {}

type fixture struct {
	svc          *Service
	checks       *fakeChecks
	dineIns      *fakeDineIns
	reservations *fakeReservations
	locks        *fakeLocks
	notifier     *fakeNotifier
}

func newFixture() *fixture {
	f := &fixture{
		checks:       &fakeChecks{items: map[uuid.UUID]*domain.TableCheck{}},
		dineIns:      &fakeDineIns{items: map[uuid.UUID]*domain.DineIn{}},
		reservations: &fakeReservations{items: map[uuid.UUID]*domain.Reservation{}},
		locks:        &fakeLocks{extended: map[string]time.Time{}},
		notifier:     &fakeNotifier{},
	}
	f.svc = NewService(f.checks, f.dineIns, f.reservations, f.locks, f.notifier, passthroughTx{}, nopMetrics{}, logger.NewNop())
	return f
}

var now = time.Date(2026, 10, 23, 19, 0, 0, 0, time.UTC)

func (f *fixture) seatDineIn() *domain.DineIn {
	d := &domain.DineIn{
		ID:                 uuid.New(),
		TableIDs:           []int64{5},
		PartySize:          3,
		SeatedAt:           now,
		EstimatedReleaseAt: now.Add(90 * time.Minute),
		Status:             domain.DineInOccupied,
	}
	f.dineIns.items[d.ID] = d
	return d
}

func (f *fixture) seatReservation() *domain.Reservation {
	r := &domain.Reservation{
		ID:       uuid.New(),
		Email:    "guest@example.com",
		TableIDs: []int64{9},
		Status:   domain.StatusSeated,
	}
	f.reservations.items[r.ID] = r
	return r
}

func TestSchedule_FortyMinutesAhead(t *testing.T) {
	f := newFixture()
	d := f.seatDineIn()

	check, err := f.svc.Schedule(context.Background(), domain.DineInSubject(d.ID), now)

	require.NoError(t, err)
	assert.Equal(t, now.Add(40*time.Minute), check.PromptedAt)
	assert.True(t, check.IsPending())
}

func TestSchedule_NoParent(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Schedule(context.Background(), domain.CheckSubject{Kind: domain.CheckDineIn}, now)
	assert.ErrorIs(t, err, ErrInvalidSubject)
}

func TestRespond_LeftReleasesDineIn(t *testing.T) {
	f := newFixture()
	d := f.seatDineIn()
	check, err := f.svc.Schedule(context.Background(), domain.DineInSubject(d.ID), now)
	require.NoError(t, err)

	require.NoError(t, f.svc.Respond(context.Background(), check.ID, domain.ResponseLeft, now.Add(41*time.Minute)))

	assert.Equal(t, domain.DineInReleased, d.Status)
	assert.Equal(t, []string{domain.DineInHolder(d.ID)}, f.locks.released)
	assert.Empty(t, f.checks.pending())
	assert.Empty(t, f.notifier.sent)
}

func TestRespond_LeftCompletesReservationAndRequestsReviewOnce(t *testing.T) {
	f := newFixture()
	r := f.seatReservation()
	first, err := f.svc.Schedule(context.Background(), domain.ReservationSubject(r.ID), now)
	require.NoError(t, err)

	require.NoError(t, f.svc.Respond(context.Background(), first.ID, domain.ResponseLeft, now))

	assert.Equal(t, domain.StatusCompleted, r.Status)
	assert.Equal(t, []domain.NotificationKind{domain.NotifyReviewRequest}, f.notifier.sent)

	// Второй ответ отклоняется, письмо не повторяется
	err = f.svc.Respond(context.Background(), first.ID, domain.ResponseLeft, now)
	assert.ErrorIs(t, err, ErrAlreadyResponded)
	assert.Len(t, f.notifier.sent, 1)
}

func TestRespond_StillSeatedChainsNextCheck(t *testing.T) {
	f := newFixture()
	d := f.seatDineIn()
	check, err := f.svc.Schedule(context.Background(), domain.DineInSubject(d.ID), now)
	require.NoError(t, err)

	answeredAt := now.Add(45 * time.Minute)
	require.NoError(t, f.svc.Respond(context.Background(), check.ID, domain.ResponseStillSeated, answeredAt))

	pending := f.checks.pending()
	require.Len(t, pending, 1)
	assert.Equal(t, answeredAt.Add(40*time.Minute), pending[0].PromptedAt)
	assert.Equal(t, domain.DineInOccupied, d.Status)
}

func TestRespond_Errors(t *testing.T) {
	f := newFixture()

	err := f.svc.Respond(context.Background(), uuid.New(), domain.CheckResponse("maybe"), now)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	err = f.svc.Respond(context.Background(), uuid.New(), domain.ResponseLeft, now)
	assert.ErrorIs(t, err, ErrCheckNotFound)
}

func TestSweepOverdue_AutoExtendsOnce(t *testing.T) {
	f := newFixture()
	d := f.seatDineIn()
	r := f.seatReservation()
	releaseBefore := d.EstimatedReleaseAt

	_, err := f.svc.Schedule(context.Background(), domain.DineInSubject(d.ID), now)
	require.NoError(t, err)
	_, err = f.svc.Schedule(context.Background(), domain.ReservationSubject(r.ID), now)
	require.NoError(t, err)

	// Проверки созданы на now+40m; через 50 минут прошли 10 минут ожидания
	sweepAt := now.Add(50 * time.Minute)

	n, err := f.svc.SweepOverdue(context.Background(), sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, releaseBefore.Add(40*time.Minute), d.EstimatedReleaseAt)
	assert.Equal(t, sweepAt.Add(40*time.Minute), f.locks.extended[domain.ReservationHolder(r.ID)])

	pending := f.checks.pending()
	require.Len(t, pending, 2)
	for _, c := range pending {
		assert.Equal(t, sweepAt.Add(40*time.Minute), c.PromptedAt)
	}

	// Повторный прогон в тот же момент ничего не делает
	n, err = f.svc.SweepOverdue(context.Background(), sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, releaseBefore.Add(40*time.Minute), d.EstimatedReleaseAt)
}

func TestSweepOverdue_WithinGraceIsUntouched(t *testing.T) {
	f := newFixture()
	d := f.seatDineIn()
	_, err := f.svc.Schedule(context.Background(), domain.DineInSubject(d.ID), now)
	require.NoError(t, err)

	n, err := f.svc.SweepOverdue(context.Background(), now.Add(49*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestListPending(t *testing.T) {
	f := newFixture()
	d := f.seatDineIn()
	_, err := f.svc.Schedule(context.Background(), domain.DineInSubject(d.ID), now)
	require.NoError(t, err)

	pending, err := f.svc.ListPending(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, pending)

	pending, err = f.svc.ListPending(context.Background(), now.Add(40*time.Minute))
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestClose_AnswersPendingChecksOfSubject(t *testing.T) {
	f := newFixture()
	d := f.seatDineIn()
	other := uuid.New()

	_, err := f.svc.Schedule(context.Background(), domain.DineInSubject(d.ID), now)
	require.NoError(t, err)
	_, err = f.svc.Schedule(context.Background(), domain.DineInSubject(other), now)
	require.NoError(t, err)

	closed, err := f.svc.Close(context.Background(), domain.DineInSubject(d.ID), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	pending := f.checks.pending()
	require.Len(t, pending, 1)
	assert.Equal(t, other, *pending[0].DineInID)

	// повторное закрытие ничего не меняет
	closed, err = f.svc.Close(context.Background(), domain.DineInSubject(d.ID), now)
	require.NoError(t, err)
	assert.Zero(t, closed)

	// закрытая проверка не попадает в список ожидающих
	listed, err := f.svc.ListPending(context.Background(), now.Add(domain.CheckInterval+domain.CheckGrace))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, other, *listed[0].DineInID)
}

func TestClose_InvalidSubject(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Close(context.Background(), domain.CheckSubject{}, now)
	assert.ErrorIs(t, err, ErrInvalidSubject)
}
