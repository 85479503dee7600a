package floor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
	tableRepo "github.com/m04kA/TableReservationService/internal/infra/storage/table"
	"github.com/m04kA/TableReservationService/internal/service/floor/models"
	"github.com/m04kA/TableReservationService/internal/service/locks"
)

// Service операции зала: посадки без брони, освобождение и продление столов
type Service struct {
	catalog      TableCatalog
	dineIns      DineInRepository
	reservations ReservationRepository
	locks        LockManager
	checks       CheckScheduler
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис зала
func NewService(
	catalog TableCatalog,
	dineIns DineInRepository,
	reservations ReservationRepository,
	locks LockManager,
	checks CheckScheduler,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		catalog:      catalog,
		dineIns:      dineIns,
		reservations: reservations,
		locks:        locks,
		checks:       checks,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Catalog возвращает схему зала
func (s *Service) Catalog(ctx context.Context) (*models.CatalogResponse, error) {
	tables, err := s.catalog.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Catalog - tables: %v", ErrInternal, err)
	}
	combos, err := s.catalog.ListCombos(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Catalog - combos: %v", ErrInternal, err)
	}
	return models.FromDomainCatalog(tables, combos), nil
}

// CreateDineIn сажает гостей без брони: посадка, замки до ожидаемого освобождения, первая проверка
func (s *Service) CreateDineIn(ctx context.Context, req *models.CreateDineInRequest) (*models.DineInResponse, error) {
	// 1. Валидация входных данных
	tableIDs := domain.DistinctIDs(req.TableIDs)
	if len(tableIDs) == 0 {
		return nil, fmt.Errorf("%w: tableIds must not be empty", ErrInvalidInput)
	}
	if req.PartySize < 1 || req.PartySize > domain.MaxPartySize {
		return nil, fmt.Errorf("%w: partySize must be between 1 and %d", ErrInvalidInput, domain.MaxPartySize)
	}
	if req.EstimatedMinutes < 0 {
		return nil, fmt.Errorf("%w: estimatedMinutes must not be negative", ErrInvalidInput)
	}
	if err := s.ensureTablesExist(ctx, tableIDs); err != nil {
		return nil, err
	}

	// 2. Расчет времени
	now := s.timeProvider.Now()
	duration := domain.SeatingDuration
	if req.EstimatedMinutes > 0 {
		duration = time.Duration(req.EstimatedMinutes) * time.Minute
	}

	dineIn := &domain.DineIn{
		ID:                 uuid.New(),
		TableIDs:           tableIDs,
		PartySize:          req.PartySize,
		SeatedAt:           now,
		EstimatedReleaseAt: now.Add(duration),
		Status:             domain.DineInOccupied,
	}

	// 3. Посадка, замки и проверка атомарно
	var firstCheck *domain.TableCheck
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.dineIns.Create(ctx, dineIn); err != nil {
			return fmt.Errorf("%w: CreateDineIn - create: %v", ErrInternal, err)
		}

		if err := s.locks.Claim(ctx, tableIDs, domain.DineInHolder(dineIn.ID), dineIn.EstimatedReleaseAt); err != nil {
			if errors.Is(err, locks.ErrLockConflict) {
				return fmt.Errorf("%w: %v", ErrTablesOccupied, err)
			}
			return fmt.Errorf("%w: CreateDineIn - claim: %v", ErrInternal, err)
		}

		check, err := s.checks.Schedule(ctx, domain.DineInSubject(dineIn.ID), now)
		if err != nil {
			return fmt.Errorf("%w: CreateDineIn - schedule check: %v", ErrInternal, err)
		}
		firstCheck = check
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTablesOccupied) {
			s.logger.Warn("CreateDineIn: tables %v occupied: %v", tableIDs, err)
		} else {
			s.logger.Error("CreateDineIn: %v", err)
		}
		return nil, err
	}

	s.logger.Info("CreateDineIn: seated walk-in id=%s party=%d tables=%v", dineIn.ID, dineIn.PartySize, tableIDs)
	return models.FromDomainDineIn(dineIn, firstCheck), nil
}

// ReleaseTables освобождает посадки и завершает рассаженные брони на столах, снимая все замки этих столов
func (s *Service) ReleaseTables(ctx context.Context, req *models.TablesRequest) (*models.ReleaseResponse, error) {
	tableIDs := domain.DistinctIDs(req.TableIDs)
	if len(tableIDs) == 0 {
		return nil, fmt.Errorf("%w: tableIds must not be empty", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	resp := &models.ReleaseResponse{}
	var reviews []*domain.Reservation

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		dineIns, err := s.dineIns.FindOccupiedByTables(ctx, tableIDs)
		if err != nil {
			return fmt.Errorf("%w: ReleaseTables - find dine-ins: %v", ErrInternal, err)
		}
		for _, d := range dineIns {
			ok, err := s.dineIns.Release(ctx, d.ID)
			if err != nil {
				return fmt.Errorf("%w: ReleaseTables - release dine-in: %v", ErrInternal, err)
			}
			if !ok {
				continue
			}
			resp.DineInsReleased++

			if _, err := s.checks.Close(ctx, domain.DineInSubject(d.ID), now); err != nil {
				return fmt.Errorf("%w: ReleaseTables - close dine-in checks: %v", ErrInternal, err)
			}
		}

		seated, err := s.reservations.FindSeatedByTables(ctx, tableIDs)
		if err != nil {
			return fmt.Errorf("%w: ReleaseTables - find reservations: %v", ErrInternal, err)
		}
		for _, r := range seated {
			ok, err := s.reservations.UpdateStatusFrom(ctx, r.ID,
				[]domain.ReservationStatus{domain.StatusSeated}, domain.StatusCompleted)
			if err != nil {
				return fmt.Errorf("%w: ReleaseTables - complete reservation: %v", ErrInternal, err)
			}
			if !ok {
				continue
			}
			resp.ReservationsCompleted++

			if _, err := s.checks.Close(ctx, domain.ReservationSubject(r.ID), now); err != nil {
				return fmt.Errorf("%w: ReleaseTables - close reservation checks: %v", ErrInternal, err)
			}

			claimed, err := s.reservations.ClaimReview(ctx, r.ID, now)
			if err != nil {
				return fmt.Errorf("%w: ReleaseTables - claim review: %v", ErrInternal, err)
			}
			if claimed {
				reviews = append(reviews, r)
			}
		}

		resp.LocksRemoved, err = s.locks.Release(ctx, tableIDs)
		if err != nil {
			return fmt.Errorf("%w: ReleaseTables - release locks: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ReleaseTables: tables %v: %v", tableIDs, err)
		return nil, err
	}

	for _, r := range reviews {
		s.notifier.Send(ctx, r.Email, domain.NotifyReviewRequest, domain.ReservationNotificationData(r))
	}

	s.logger.Info("ReleaseTables: tables %v released (dine-ins=%d, reservations=%d)",
		tableIDs, resp.DineInsReleased, resp.ReservationsCompleted)
	return resp, nil
}

// ExtendTables сдвигает ожидаемое освобождение посадок на столах и продлевает их замки
func (s *Service) ExtendTables(ctx context.Context, req *models.TablesRequest) (*models.ExtendResponse, error) {
	tableIDs := domain.DistinctIDs(req.TableIDs)
	if len(tableIDs) == 0 {
		return nil, fmt.Errorf("%w: tableIds must not be empty", ErrInvalidInput)
	}
	if req.Minutes < 1 {
		return nil, fmt.Errorf("%w: minutes must be positive", ErrInvalidInput)
	}
	extension := time.Duration(req.Minutes) * time.Minute

	resp := &models.ExtendResponse{}
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		dineIns, err := s.dineIns.FindOccupiedByTables(ctx, tableIDs)
		if err != nil {
			return fmt.Errorf("%w: ExtendTables - find dine-ins: %v", ErrInternal, err)
		}

		for _, d := range dineIns {
			if err := s.dineIns.ExtendRelease(ctx, d.ID, extension); err != nil {
				return fmt.Errorf("%w: ExtendTables - extend dine-in: %v", ErrInternal, err)
			}
			if _, err := s.locks.Extend(ctx, domain.DineInHolder(d.ID), d.EstimatedReleaseAt.Add(extension)); err != nil {
				return fmt.Errorf("%w: ExtendTables - extend locks: %v", ErrInternal, err)
			}
			resp.DineInsExtended++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ExtendTables: tables %v: %v", tableIDs, err)
		return nil, err
	}

	s.logger.Info("ExtendTables: tables %v extended by %d minutes (dine-ins=%d)", tableIDs, req.Minutes, resp.DineInsExtended)
	return resp, nil
}

// TableDetails показывает, кто сидит за столом
func (s *Service) TableDetails(ctx context.Context, tableID int64) (*models.TableDetailsResponse, error) {
	if _, err := s.catalog.GetTable(ctx, tableID); err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("%w: TableDetails - get table: %v", ErrInternal, err)
	}

	dineIns, err := s.dineIns.FindOccupiedByTables(ctx, []int64{tableID})
	if err != nil {
		return nil, fmt.Errorf("%w: TableDetails - dine-ins: %v", ErrInternal, err)
	}
	if len(dineIns) > 0 {
		return models.DineInTable(tableID, dineIns[0]), nil
	}

	seated, err := s.reservations.FindSeatedByTables(ctx, []int64{tableID})
	if err != nil {
		return nil, fmt.Errorf("%w: TableDetails - reservations: %v", ErrInternal, err)
	}
	if len(seated) > 0 {
		return models.ReservationTable(tableID, seated[0]), nil
	}

	return models.AvailableTable(tableID), nil
}

func (s *Service) ensureTablesExist(ctx context.Context, tableIDs []int64) error {
	tables, err := s.catalog.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("%w: ensureTablesExist - list: %v", ErrInternal, err)
	}

	known := domain.NewTableSet()
	for _, t := range tables {
		known.Add(t.ID)
	}
	for _, id := range tableIDs {
		if !known.Has(id) {
			return fmt.Errorf("%w: %d", ErrTableNotFound, id)
		}
	}
	return nil
}
