package get_time_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/internal/service/timeslots"
)

// UseCase use case получения сетки слотов с доступностью
type UseCase struct {
	engine       AssignmentEngine
	expiry       ExpirySweeper
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine AssignmentEngine, expiry ExpirySweeper, logger Logger) *UseCase {
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

// Execute возвращает все слоты даты с признаком доступности для компании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTimeSlots: date=%s, partySize=%d", req.Date.Format(domain.DateFormat), req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetTimeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Освобождаем столы просроченных депозитов, ошибка не мешает ответу
	if _, err := uc.expiry.ExpireStale(ctx, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GetTimeSlots: expiry sweep failed: %v", err)
	}

	// 3. Проверяем каждый слот; ошибка подбора делает слот недоступным
	times := timeslots.Generate(req.Date)
	slots := make([]Slot, 0, len(times))
	var lastErr error
	failed := 0
	for _, t := range times {
		assignment, err := uc.engine.Assign(ctx, req.PartySize, req.Date, t)
		if err != nil {
			uc.logger.Error("GetTimeSlots: failed to check slot %s: %v", t, err)
			lastErr = err
			failed++
		}
		slots = append(slots, Slot{Time: t, Available: err == nil && assignment != nil})
	}

	// 4. Хранилище недоступно целиком: сетка из одних "занято" была бы неправдой
	if failed == len(times) && lastErr != nil {
		return nil, fmt.Errorf("%w: GetTimeSlots - all %d slots failed: %v", ErrInternal, failed, lastErr)
	}

	return &Response{Date: req.Date, Slots: slots}, nil
}
