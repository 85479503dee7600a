package check_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// UseCase use case проверки доступности столов
type UseCase struct {
	engine       AssignmentEngine
	maxPartySize int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine AssignmentEngine, maxPartySize int, logger Logger) *UseCase {
	return &UseCase{
		engine:       engine,
		maxPartySize: maxPartySize,
		logger:       logger,
	}
}

// Execute подбирает столы для компании, ничего не резервируя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: partySize=%d, date=%s, time=%s",
		req.PartySize, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Слишком большие компании отсекаем без обращения к хранилищу
	if req.PartySize > uc.maxPartySize {
		uc.logger.Info("CheckAvailability: party of %d exceeds max %d", req.PartySize, uc.maxPartySize)
		return &Response{Available: false, Reason: ReasonTooLarge}, nil
	}

	// 3. Подбор столов
	assignment, err := uc.engine.Assign(ctx, req.PartySize, req.Date, req.Time)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to assign tables: %v", err)
		return nil, fmt.Errorf("%w: CheckAvailability - assign: %v", ErrInternal, err)
	}

	if assignment == nil {
		return &Response{Available: false}, nil
	}

	uc.logger.Info("CheckAvailability: rule=%s, tables=%v", assignment.Rule, assignment.TableIDs)

	return &Response{
		Available:              true,
		TableIDs:               assignment.TableIDs,
		IsCombo:                assignment.IsCombo,
		RequiresReallocation:   assignment.RequiresReallocation,
		ReallocationSuggestion: assignment.ReallocationSuggestion,
	}, nil
}
