package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/internal/service/locks"
	"github.com/m04kA/TableReservationService/pkg/txmanager"
)

// Options правила бронирования
type Options struct {
	MaxPartySize        int
	DepositMinPartySize int
	Location            *time.Location // зона ресторана для определения "сегодня"
	BridgeTables        []int64        // единственные столы, которые бронь с пересадкой может не захватывать
}

// UseCase use case для создания бронирования
type UseCase struct {
	reservations ReservationRepository
	catalog      TableCatalog
	occupancy    OccupancyResolver
	assigner     Assigner
	locks        LockManager
	notifier     Notifier
	txManager    TransactionManager
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservations ReservationRepository,
	catalog TableCatalog,
	occupancy OccupancyResolver,
	assigner Assigner,
	locks LockManager,
	notifier Notifier,
	txManager TransactionManager,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &UseCase{
		reservations: reservations,
		catalog:      catalog,
		occupancy:    occupancy,
		assigner:     assigner,
		locks:        locks,
		notifier:     notifier,
		txManager:    txManager,
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

// Execute создает бронирование на выбранные столы.
// Замки и запись создаются в сериализуемой транзакции; проигравший гонку получает ErrTablesUnavailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: party=%d, date=%s, time=%s, tables=%v, admin=%t",
		req.PartySize, req.Date.Format(domain.DateFormat), req.Time, req.TableIDs, req.IsAdmin)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.opts.MaxPartySize); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата и слот
	now := uc.timeProvider.Now()
	if err := validateSchedule(req, now, uc.opts.Location); err != nil {
		uc.logger.Warn("CreateReservation: schedule validation failed: %v", err)
		return nil, err
	}

	// 3. Столы существуют
	tableIDs := domain.DistinctIDs(req.TableIDs)
	tables, err := uc.catalog.ListTables(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to list tables: %v", err)
		return nil, fmt.Errorf("%w: CreateReservation - list tables: %v", ErrInternal, err)
	}
	if err := validateTablesExist(tables, tableIDs); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 4. Статус по правилу депозита
	requiresDeposit := domain.RequiresDeposit(req.PartySize, uc.opts.DepositMinPartySize, req.WaiveDeposit)
	status := domain.StatusConfirmed
	if requiresDeposit {
		status = domain.StatusDepositRequired
	}
	createdBy := domain.CreatedByCustomer
	if req.IsAdmin {
		createdBy = domain.CreatedByAdmin
	}

	// ID генерируем заранее, чтобы замки и запись ссылались на одного владельца
	reservation := &domain.Reservation{
		ID:                   uuid.New(),
		CustomerName:         req.CustomerName,
		Email:                req.Email,
		Phone:                req.Phone,
		PartySize:            req.PartySize,
		Date:                 req.Date,
		Time:                 req.Time,
		TableIDs:             tableIDs,
		Status:               status,
		Notes:                req.Notes,
		RequiresReallocation: req.RequiresReallocation,
		CreatedBy:            createdBy,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	// 5. Проверка занятости, замки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Повторно проверяем столы: подбор мог устареть
		occupied, err := uc.occupancy.OccupiedTableIDs(txCtx, req.Date, req.Time)
		if err != nil {
			return fmt.Errorf("%w: CreateReservation - occupancy: %v", ErrInternal, err)
		}

		claim := tableIDs
		if req.RequiresReallocation {
			// флаг клиента принимаем, только если движок сам предлагает пересадку на эти столы
			if err := uc.confirmReallocation(txCtx, req, tableIDs, occupied); err != nil {
				return err
			}
			// мостовой стол остается за текущими гостями до пересадки
			claim = freeTables(tableIDs, occupied)
		} else if occupied.HasAny(tableIDs) {
			return fmt.Errorf("%w: occupied at %s", ErrTablesUnavailable, req.Time)
		}

		// 5.2. Захватываем замки
		if len(claim) > 0 {
			if err := uc.locks.ClaimFor(txCtx, claim, domain.ReservationHolder(reservation.ID)); err != nil {
				if errors.Is(err, locks.ErrLockConflict) {
					return fmt.Errorf("%w: %v", ErrTablesUnavailable, err)
				}
				return fmt.Errorf("%w: CreateReservation - claim: %v", ErrInternal, err)
			}
		}

		// 5.3. Сохраняем бронирование
		if err := uc.reservations.Create(txCtx, reservation); err != nil {
			return fmt.Errorf("%w: CreateReservation - create: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTablesUnavailable):
			uc.logger.Warn("CreateReservation: tables %v unavailable: %v", tableIDs, err)
			return nil, err
		case errors.Is(err, txmanager.ErrSerialization):
			uc.logger.Warn("CreateReservation: concurrent booking for tables %v: %v", tableIDs, err)
			return nil, fmt.Errorf("%w: %v", ErrTablesUnavailable, err)
		default:
			uc.logger.Error("CreateReservation: %v", err)
			return nil, err
		}
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%s, status=%s", reservation.ID, status)

	// 6. Письмо гостю; ошибки доставки не влияют на результат
	kind := domain.NotifyReservationConfirmation
	if requiresDeposit {
		kind = domain.NotifyDepositRequired
	}
	uc.notifier.Send(ctx, reservation.Email, kind, domain.ReservationNotificationData(reservation))

	return &Response{
		ReservationID:   reservation.ID,
		Status:          string(status),
		RequiresDeposit: requiresDeposit,
	}, nil
}

// confirmReallocation проверяет, что занятые столы брони заняты только на мостовых столах
// и движок для этой компании выбирает те же столы с пересадкой
func (uc *UseCase) confirmReallocation(ctx context.Context, req *Request, tableIDs []int64, occupied domain.TableSet) error {
	for _, id := range tableIDs {
		if occupied.Has(id) && !containsID(uc.opts.BridgeTables, id) {
			return fmt.Errorf("%w: table %d is occupied and is not a bridge table", ErrTablesUnavailable, id)
		}
	}

	assignment, err := uc.assigner.Assign(ctx, req.PartySize, req.Date, req.Time)
	if err != nil {
		return fmt.Errorf("%w: CreateReservation - assign: %v", ErrInternal, err)
	}
	if assignment == nil || !assignment.RequiresReallocation || !sameTables(assignment.TableIDs, tableIDs) {
		return fmt.Errorf("%w: reallocation is not available for tables %v", ErrTablesUnavailable, tableIDs)
	}
	return nil
}

func sameTables(a, b []int64) bool {
	x, y := domain.DistinctIDs(a), domain.DistinctIDs(b)
	if len(x) != len(y) {
		return false
	}
	set := domain.NewTableSet(x...)
	for _, id := range y {
		if !set.Has(id) {
			return false
		}
	}
	return true
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// freeTables столы из ids, не занятые в окне посадки
func freeTables(ids []int64, occupied domain.TableSet) []int64 {
	free := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !occupied.Has(id) {
			free = append(free, id)
		}
	}
	return free
}
