package get_floor_status

import (
	"context"
	"fmt"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// UseCase use case состояния зала на дату и время
type UseCase struct {
	engine       FloorEngine
	expiry       ExpirySweeper
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine FloorEngine, expiry ExpirySweeper, logger Logger) *UseCase {
	return &UseCase{
		engine:       engine,
		expiry:       expiry,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает занятые, подходящие и предлагаемые столы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFloorStatus: partySize=%d, date=%s, time=%s",
		req.PartySize, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFloorStatus: validation failed: %v", err)
		return nil, err
	}

	// 2. Освобождаем столы просроченных депозитов
	if _, err := uc.expiry.ExpireStale(ctx, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GetFloorStatus: expiry sweep failed: %v", err)
	}

	// 3. Занятость, подходящие столы и подбор за одно чтение
	snapshot, err := uc.engine.FloorStatus(ctx, req.PartySize, req.Date, req.Time)
	if err != nil {
		uc.logger.Error("GetFloorStatus: failed to build floor status: %v", err)
		return nil, fmt.Errorf("%w: GetFloorStatus - floor status: %v", ErrInternal, err)
	}

	resp := &Response{
		OccupiedTableIDs:  snapshot.Occupied.Sorted(),
		EligibleTableIDs:  snapshot.Eligible,
		SuggestedTableIDs: []int64{},
	}
	if resp.EligibleTableIDs == nil {
		resp.EligibleTableIDs = []int64{}
	}
	if snapshot.Assignment != nil {
		resp.SuggestedTableIDs = snapshot.Assignment.TableIDs
		resp.IsCombo = snapshot.Assignment.IsCombo
	}

	return resp, nil
}
