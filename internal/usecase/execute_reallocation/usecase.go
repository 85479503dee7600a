package execute_reallocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
	dineinRepo "github.com/m04kA/TableReservationService/internal/infra/storage/dinein"
	reservationRepo "github.com/m04kA/TableReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/TableReservationService/internal/service/locks"
)

// UseCase use case пересадки гостей с мостового стола
type UseCase struct {
	reservations ReservationRepository
	dineIns      DineInRepository
	catalog      TableCatalog
	locks        LockManager
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservations ReservationRepository,
	dineIns DineInRepository,
	catalog TableCatalog,
	locks LockManager,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservations: reservations,
		dineIns:      dineIns,
		catalog:      catalog,
		locks:        locks,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит гостей и их замки на новые столы и снимает флаг пересадки с большой брони.
// Если целевые столы успел захватить кто-то другой, ничего не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExecuteReallocation: blocker=%s (%s), from=%v, to=%v, large=%s",
		req.BlockerID, req.BlockerType, req.FromTableIDs, req.ToTableIDs, req.LargeReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExecuteReallocation: validation failed: %v", err)
		return nil, err
	}

	toTableIDs := domain.DistinctIDs(req.ToTableIDs)
	fromTableIDs := domain.DistinctIDs(req.FromTableIDs)

	tables, err := uc.catalog.ListTables(ctx)
	if err != nil {
		uc.logger.Error("ExecuteReallocation: failed to list tables: %v", err)
		return nil, fmt.Errorf("%w: ExecuteReallocation - list tables: %v", ErrInternal, err)
	}
	if err := validateTablesExist(tables, toTableIDs); err != nil {
		uc.logger.Warn("ExecuteReallocation: %v", err)
		return nil, err
	}

	// 2. Большая бронь существует
	if _, err := uc.reservations.GetByID(ctx, req.LargeReservationID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ExecuteReallocation: large reservation id=%s not found", req.LargeReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ExecuteReallocation: failed to get reservation id=%s: %v", req.LargeReservationID, err)
		return nil, fmt.Errorf("%w: ExecuteReallocation - get reservation: %v", ErrInternal, err)
	}

	// 3. Пересаживаемые гости
	blocker, err := uc.loadBlocker(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Замки и столы переносятся атомарно
	now := uc.timeProvider.Now()
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Снимаем только замки самих гостей
		if _, err := uc.locks.ReleaseHeld(txCtx, fromTableIDs, blocker.holder); err != nil {
			return fmt.Errorf("%w: ExecuteReallocation - release: %v", ErrInternal, err)
		}

		// 4.2. Захватываем целевые столы
		if err := uc.locks.Claim(txCtx, toTableIDs, blocker.holder, now.Add(blocker.lockTTL)); err != nil {
			if errors.Is(err, locks.ErrLockConflict) {
				return fmt.Errorf("%w: %v", ErrTargetsOccupied, err)
			}
			return fmt.Errorf("%w: ExecuteReallocation - claim: %v", ErrInternal, err)
		}

		// 4.3. Обновляем столы гостей
		if err := blocker.move(txCtx, toTableIDs); err != nil {
			return fmt.Errorf("%w: ExecuteReallocation - update tables: %v", ErrInternal, err)
		}

		// 4.4. Большой брони пересадка больше не нужна
		if err := uc.reservations.ClearReallocationFlag(txCtx, req.LargeReservationID); err != nil {
			return fmt.Errorf("%w: ExecuteReallocation - clear flag: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTargetsOccupied) {
			uc.logger.Warn("ExecuteReallocation: targets %v occupied: %v", toTableIDs, err)
		} else {
			uc.logger.Error("ExecuteReallocation: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("ExecuteReallocation: moved %s %s to tables %v", req.BlockerType, req.BlockerID, toTableIDs)

	// 5. Гость с бронью узнает о новом столе
	if blocker.reservation != nil {
		moved := *blocker.reservation
		moved.TableIDs = toTableIDs
		uc.notifier.Send(ctx, moved.Email, domain.NotifyTableUpdate, domain.ReservationNotificationData(&moved))
	}

	return &Response{BlockerID: req.BlockerID, TableIDs: toTableIDs}, nil
}

// blockerParty гости, которых пересаживают
type blockerParty struct {
	holder      string
	lockTTL     time.Duration
	reservation *domain.Reservation // nil для посадки без брони
	move        func(ctx context.Context, tableIDs []int64) error
}

func (uc *UseCase) loadBlocker(ctx context.Context, req *Request) (*blockerParty, error) {
	if req.BlockerType == domain.BlockerDineIn {
		d, err := uc.dineIns.GetByID(ctx, req.BlockerID)
		if err != nil {
			if errors.Is(err, dineinRepo.ErrDineInNotFound) {
				uc.logger.Warn("ExecuteReallocation: dine-in id=%s not found", req.BlockerID)
				return nil, ErrBlockerNotFound
			}
			uc.logger.Error("ExecuteReallocation: failed to get dine-in id=%s: %v", req.BlockerID, err)
			return nil, fmt.Errorf("%w: ExecuteReallocation - get dine-in: %v", ErrInternal, err)
		}
		return &blockerParty{
			holder:  domain.DineInHolder(d.ID),
			lockTTL: domain.MovedDineInTTL,
			move: func(ctx context.Context, tableIDs []int64) error {
				return uc.dineIns.UpdateTableIDs(ctx, d.ID, tableIDs)
			},
		}, nil
	}

	r, err := uc.reservations.GetByID(ctx, req.BlockerID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ExecuteReallocation: blocking reservation id=%s not found", req.BlockerID)
			return nil, ErrBlockerNotFound
		}
		uc.logger.Error("ExecuteReallocation: failed to get reservation id=%s: %v", req.BlockerID, err)
		return nil, fmt.Errorf("%w: ExecuteReallocation - get blocker: %v", ErrInternal, err)
	}
	return &blockerParty{
		holder:      domain.ReservationHolder(r.ID),
		lockTTL:     domain.MovedReservationTTL,
		reservation: r,
		move: func(ctx context.Context, tableIDs []int64) error {
			return uc.reservations.UpdateTableIDs(ctx, r.ID, tableIDs)
		},
	}, nil
}
