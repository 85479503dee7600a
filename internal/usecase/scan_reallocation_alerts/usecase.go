package scan_reallocation_alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
	dineinRepo "github.com/m04kA/TableReservationService/internal/infra/storage/dinein"
	reservationRepo "github.com/m04kA/TableReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/TableReservationService/internal/service/timeslots"
	"github.com/m04kA/TableReservationService/pkg/types"
)

const endOfDay types.TimeString = "23:59"

// UseCase use case поиска больших броней, чьи столы заняты другими гостями
type UseCase struct {
	reservations ReservationRepository
	dineIns      DineInRepository
	locks        LockReader
	engine       AssignmentEngine
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservations ReservationRepository,
	dineIns DineInRepository,
	locks LockReader,
	engine AssignmentEngine,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.LookAhead <= 0 {
		opts.LookAhead = domain.AlertLookAhead
	}
	return &UseCase{
		reservations: reservations,
		dineIns:      dineIns,
		locks:        locks,
		engine:       engine,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute сканирует сегодняшние брони на ближайшие часы. Состояние между вызовами не хранится.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	// 1. Окно сканирования в зоне ресторана
	now := uc.timeProvider.Now()
	today, from, to := scanWindow(now, uc.opts.Location, uc.opts.LookAhead)

	uc.logger.Info("ScanReallocationAlerts: date=%s, from=%s, to=%s", today.Format(domain.DateFormat), from, to)

	// 2. Большие брони, ожидающие пересадки
	pending, err := uc.reservations.ListRequiringReallocation(ctx, today, from, to)
	if err != nil {
		uc.logger.Error("ScanReallocationAlerts: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: ScanReallocationAlerts - list: %v", ErrInternal, err)
	}

	// 3. Ищем чужие замки на их столах; ошибка по одной брони не прерывает скан
	alerts := make([]domain.ReallocationAlert, 0)
	for _, res := range pending {
		found, err := uc.scanReservation(ctx, res, now, today, from)
		if err != nil {
			uc.logger.Error("ScanReallocationAlerts: reservation id=%s skipped: %v", res.ID, err)
			continue
		}
		alerts = append(alerts, found...)
	}

	uc.logger.Info("ScanReallocationAlerts: %d reservations, %d alerts", len(pending), len(alerts))
	return &Response{Alerts: alerts}, nil
}

func (uc *UseCase) scanReservation(
	ctx context.Context,
	res *domain.Reservation,
	now, today time.Time,
	at types.TimeString,
) ([]domain.ReallocationAlert, error) {
	locks, err := uc.locks.Holders(ctx, res.TableIDs)
	if err != nil {
		return nil, fmt.Errorf("holders: %v", err)
	}

	var alerts []domain.ReallocationAlert
	for _, lock := range locks {
		if lock.HolderID == domain.ReservationHolder(res.ID) || lock.IsExpired(now) {
			continue
		}

		blocker, err := uc.resolveBlocker(ctx, lock)
		if err != nil {
			return nil, err
		}

		// Ищем, куда пересадить мешающих гостей прямо сейчас
		var move []int64
		if blocker.PartySize > 0 {
			suggestion, err := uc.engine.Assign(ctx, blocker.PartySize, today, at)
			if err != nil {
				return nil, fmt.Errorf("assign blocker: %v", err)
			}
			if suggestion != nil {
				move = suggestion.TableIDs
			}
		}

		alerts = append(alerts, domain.ReallocationAlert{
			ID:             domain.AlertID(res.ID, lock.TableID),
			Reservation:    res,
			BlockerTableID: lock.TableID,
			Blocker:        *blocker,
			SuggestedMove:  move,
		})
	}

	return alerts, nil
}

// resolveBlocker определяет, кто держит стол. Исчезнувший владелец становится Unknown Guest.
func (uc *UseCase) resolveBlocker(ctx context.Context, lock *domain.TableLock) (*domain.BlockerParty, error) {
	unknown := &domain.BlockerParty{
		Type:     domain.BlockerUnknown,
		Name:     domain.UnknownGuestName,
		TableIDs: []int64{lock.TableID},
	}

	kind, id := domain.ParseHolder(lock.HolderID)
	switch kind {
	case domain.HolderDineIn:
		d, err := uc.dineIns.GetByID(ctx, id)
		if errors.Is(err, dineinRepo.ErrDineInNotFound) {
			return unknown, nil
		}
		if err != nil {
			return nil, fmt.Errorf("dine-in %s: %v", id, err)
		}
		return &domain.BlockerParty{
			ID:        d.ID.String(),
			Type:      domain.BlockerDineIn,
			Name:      domain.WalkInGuestName,
			PartySize: d.PartySize,
			TableIDs:  []int64{lock.TableID},
		}, nil

	case domain.HolderReservation:
		r, err := uc.reservations.GetByID(ctx, id)
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return unknown, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reservation %s: %v", id, err)
		}
		return &domain.BlockerParty{
			ID:        r.ID.String(),
			Type:      domain.BlockerReservation,
			Name:      r.CustomerName,
			PartySize: r.PartySize,
			TableIDs:  []int64{lock.TableID},
		}, nil
	}

	return unknown, nil
}

// scanWindow сегодняшняя дата и интервал [now, now+lookAhead], обрезанный концом суток
func scanWindow(now time.Time, loc *time.Location, lookAhead time.Duration) (time.Time, types.TimeString, types.TimeString) {
	local := now.In(loc)
	end := local.Add(lookAhead)

	to := types.NewTimeString(end)
	if end.YearDay() != local.YearDay() || end.Year() != local.Year() {
		to = endOfDay
	}
	return timeslots.Today(now, loc), types.NewTimeString(local), to
}
