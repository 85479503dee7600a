package locks

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// SweepExpireReservations имя прогона в метриках
const SweepExpireReservations = "expire-reservations"

// Options длительности удержания
type Options struct {
	LockTTL     time.Duration
	DepositHold time.Duration
}

// DefaultOptions значения по умолчанию
func DefaultOptions() Options {
	return Options{
		LockTTL:     domain.LockTTL,
		DepositHold: domain.DepositHold,
	}
}

// Manager замки столов и истечение неоплаченных депозитов
type Manager struct {
	locks        LockRepository
	reservations ReservationRepository
	metrics      Metrics
	timeProvider TimeProvider
	opts         Options
	logger       Logger
}

// NewManager создает менеджер замков
func NewManager(
	locks LockRepository,
	reservations ReservationRepository,
	metrics Metrics,
	opts Options,
	logger Logger,
) *Manager {
	return &Manager{
		locks:        locks,
		reservations: reservations,
		metrics:      metrics,
		timeProvider: RealTimeProvider{},
		opts:         opts,
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (m *Manager) WithTimeProvider(tp TimeProvider) *Manager {
	m.timeProvider = tp
	return m
}

// Lock идемпотентно ставит замок на каждый стол до now+LockTTL.
// Чужие замки перезаписываются: это административная операция.
func (m *Manager) Lock(ctx context.Context, tableIDs []int64, holder string) error {
	if len(tableIDs) == 0 {
		return ErrNoTables
	}

	until := m.timeProvider.Now().Add(m.opts.LockTTL)
	if err := m.locks.Upsert(ctx, tableIDs, holder, until); err != nil {
		return fmt.Errorf("%w: Lock - upsert: %v", ErrInternal, err)
	}
	return nil
}

// Claim захватывает столы для holder до until. Успех только если захвачены все столы;
// иначе ErrLockConflict, и вызывающая транзакция должна откатиться.
func (m *Manager) Claim(ctx context.Context, tableIDs []int64, holder string, until time.Time) error {
	wanted := domain.DistinctIDs(tableIDs)
	if len(wanted) == 0 {
		return ErrNoTables
	}

	acquired, err := m.locks.Acquire(ctx, wanted, holder, until, m.timeProvider.Now())
	if err != nil {
		return fmt.Errorf("%w: Claim - acquire: %v", ErrInternal, err)
	}

	if len(acquired) < len(wanted) {
		m.metrics.ObserveLockConflict()
		m.logger.Warn("Claim: holder=%s acquired %d of %d tables %v", holder, len(acquired), len(wanted), wanted)
		return fmt.Errorf("%w: tables %v", ErrLockConflict, missing(wanted, acquired))
	}

	return nil
}

// ClaimFor захватывает столы на стандартный срок LockTTL
func (m *Manager) ClaimFor(ctx context.Context, tableIDs []int64, holder string) error {
	return m.Claim(ctx, tableIDs, holder, m.timeProvider.Now().Add(m.opts.LockTTL))
}

// Release безусловно снимает замки со столов
func (m *Manager) Release(ctx context.Context, tableIDs []int64) (int64, error) {
	if len(tableIDs) == 0 {
		return 0, nil
	}

	n, err := m.locks.DeleteByTableIDs(ctx, tableIDs)
	if err != nil {
		return 0, fmt.Errorf("%w: Release - delete: %v", ErrInternal, err)
	}
	return n, nil
}

// ReleaseHeld снимает только замки holder на указанных столах
func (m *Manager) ReleaseHeld(ctx context.Context, tableIDs []int64, holder string) (int64, error) {
	if len(tableIDs) == 0 {
		return 0, nil
	}

	n, err := m.locks.DeleteByTablesAndHolder(ctx, tableIDs, holder)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseHeld - delete: %v", ErrInternal, err)
	}
	return n, nil
}

// Extend продлевает все замки holder до until
func (m *Manager) Extend(ctx context.Context, holder string, until time.Time) (int64, error) {
	n, err := m.locks.ExtendHolder(ctx, holder, until)
	if err != nil {
		return 0, fmt.Errorf("%w: Extend - update: %v", ErrInternal, err)
	}
	return n, nil
}

// Holders возвращает замки на указанных столах
func (m *Manager) Holders(ctx context.Context, tableIDs []int64) ([]*domain.TableLock, error) {
	if len(tableIDs) == 0 {
		return nil, nil
	}

	locks, err := m.locks.ListByTableIDs(ctx, tableIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: Holders - list: %v", ErrInternal, err)
	}
	return locks, nil
}

// ExpireStale отменяет брони deposit_required старше DepositHold и снимает их замки.
// Ошибка одной записи не прерывает прогон. Возвращает число отмененных броней.
func (m *Manager) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	stale, err := m.reservations.ListStaleDepositRequired(ctx, now.Add(-m.opts.DepositHold))
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - list: %v", ErrInternal, err)
	}

	cancelled := 0
	for _, res := range stale {
		// Смена статуса только из deposit_required: повторный прогон ничего не отменит
		ok, err := m.reservations.UpdateStatusFrom(ctx, res.ID,
			[]domain.ReservationStatus{domain.StatusDepositRequired}, domain.StatusCancelled)
		if err != nil {
			m.logger.Error("ExpireStale: failed to cancel reservation id=%s: %v", res.ID, err)
			continue
		}
		if !ok {
			continue
		}
		cancelled++

		if _, err := m.locks.DeleteByTablesAndHolder(ctx, res.TableIDs, domain.ReservationHolder(res.ID)); err != nil {
			m.logger.Error("ExpireStale: failed to release locks of reservation id=%s: %v", res.ID, err)
		}
	}

	if cancelled > 0 {
		m.logger.Info("ExpireStale: cancelled %d of %d stale reservations", cancelled, len(stale))
	}
	m.metrics.ObserveSweep(SweepExpireReservations, cancelled)

	return cancelled, nil
}

func missing(wanted, acquired []int64) []int64 {
	got := domain.NewTableSet()
	got.Add(acquired...)

	var out []int64
	for _, id := range wanted {
		if !got.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
