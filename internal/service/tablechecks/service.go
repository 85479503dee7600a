package tablechecks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
	checkRepo "github.com/m04kA/TableReservationService/internal/infra/storage/tablecheck"
)

// SweepTableChecks имя прогона в метриках
const SweepTableChecks = "table-checks"

// Service цепочка проверок "гости еще за столом?"
type Service struct {
	checks       CheckRepository
	dineIns      DineInRepository
	reservations ReservationRepository
	locks        LockManager
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
}

// NewService создает сервис проверок
func NewService(
	checks CheckRepository,
	dineIns DineInRepository,
	reservations ReservationRepository,
	locks LockManager,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		checks:       checks,
		dineIns:      dineIns,
		reservations: reservations,
		locks:        locks,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Schedule создает ожидающую проверку на now+40m
func (s *Service) Schedule(ctx context.Context, subject domain.CheckSubject, now time.Time) (*domain.TableCheck, error) {
	if subject.DineInID == nil && subject.ReservationID == nil {
		return nil, ErrInvalidSubject
	}

	check := &domain.TableCheck{
		ID:           uuid.New(),
		CheckSubject: subject,
		PromptedAt:   now.Add(domain.CheckInterval),
	}
	if err := s.checks.Create(ctx, check); err != nil {
		return nil, fmt.Errorf("%w: Schedule - create: %v", ErrInternal, err)
	}

	return check, nil
}

// Close закрывает цепочку проверок компании, освобожденной вручную: ожидающие проверки получают ответ left.
// Освобождение стола и письма остаются за вызывающим.
func (s *Service) Close(ctx context.Context, subject domain.CheckSubject, now time.Time) (int64, error) {
	if subject.DineInID == nil && subject.ReservationID == nil {
		return 0, ErrInvalidSubject
	}

	closed, err := s.checks.CloseForSubject(ctx, subject, domain.ResponseLeft, now)
	if err != nil {
		return 0, fmt.Errorf("%w: Close - close checks: %v", ErrInternal, err)
	}
	return closed, nil
}

// ListPending возвращает проверки без ответа, время которых уже наступило
func (s *Service) ListPending(ctx context.Context, now time.Time) ([]*domain.TableCheck, error) {
	checks, err := s.checks.ListPromptedBefore(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - list: %v", ErrInternal, err)
	}
	return checks, nil
}

// Respond фиксирует ответ персонала.
// left освобождает родителя и его замки, still_seated планирует следующую проверку.
func (s *Service) Respond(ctx context.Context, checkID uuid.UUID, response domain.CheckResponse, now time.Time) error {
	// 1. Валидация входных данных
	if !response.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidResponse, response)
	}

	var review *domain.Reservation

	// 2. Ответ и последствия в одной транзакции
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		check, err := s.checks.GetByID(ctx, checkID)
		if err != nil {
			if errors.Is(err, checkRepo.ErrCheckNotFound) {
				return ErrCheckNotFound
			}
			return fmt.Errorf("%w: Respond - get check: %v", ErrInternal, err)
		}

		ok, err := s.checks.MarkResponded(ctx, check.ID, response, now)
		if err != nil {
			return fmt.Errorf("%w: Respond - mark responded: %v", ErrInternal, err)
		}
		if !ok {
			return ErrAlreadyResponded
		}

		switch response {
		case domain.ResponseLeft:
			review, err = s.releaseParent(ctx, check.CheckSubject, now)
			return err
		default:
			_, err = s.Schedule(ctx, check.CheckSubject, now)
			return err
		}
	})
	if err != nil {
		if !errors.Is(err, ErrAlreadyResponded) && !errors.Is(err, ErrCheckNotFound) {
			s.logger.Error("Respond: check id=%s: %v", checkID, err)
		}
		return err
	}

	// 3. Письмо после фиксации транзакции
	if review != nil {
		s.notifier.Send(ctx, review.Email, domain.NotifyReviewRequest, domain.ReservationNotificationData(review))
	}

	s.logger.Info("Respond: check id=%s answered %s", checkID, response)
	return nil
}

// SweepOverdue считает проигнорированные проверки ответом still_seated:
// посадка продлевается на 40 минут, замки брони продлеваются до now+40m, планируется новая проверка.
func (s *Service) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.checks.ListPromptedBefore(ctx, now.Add(-domain.CheckGrace))
	if err != nil {
		return 0, fmt.Errorf("%w: SweepOverdue - list: %v", ErrInternal, err)
	}

	processed := 0
	for _, check := range overdue {
		err := s.txManager.Do(ctx, func(ctx context.Context) error {
			return s.autoExtend(ctx, check, now)
		})
		if err != nil {
			if !errors.Is(err, ErrAlreadyResponded) {
				s.logger.Error("SweepOverdue: check id=%s: %v", check.ID, err)
			}
			continue
		}
		processed++
	}

	s.metrics.ObserveSweep(SweepTableChecks, processed)
	if processed > 0 {
		s.logger.Info("SweepOverdue: auto-extended %d of %d overdue checks", processed, len(overdue))
	}

	return processed, nil
}

func (s *Service) autoExtend(ctx context.Context, check *domain.TableCheck, now time.Time) error {
	// Гейт на responded_at делает прогон повторяемым
	ok, err := s.checks.MarkResponded(ctx, check.ID, domain.ResponseStillSeated, now)
	if err != nil {
		return fmt.Errorf("%w: autoExtend - mark responded: %v", ErrInternal, err)
	}
	if !ok {
		return ErrAlreadyResponded
	}

	switch {
	case check.Kind == domain.CheckDineIn && check.DineInID != nil:
		if err := s.dineIns.ExtendRelease(ctx, *check.DineInID, domain.CheckInterval); err != nil {
			return fmt.Errorf("%w: autoExtend - extend dine-in: %v", ErrInternal, err)
		}
	case check.Kind == domain.CheckReservation && check.ReservationID != nil:
		if _, err := s.locks.Extend(ctx, domain.ReservationHolder(*check.ReservationID), now.Add(domain.CheckInterval)); err != nil {
			return fmt.Errorf("%w: autoExtend - extend locks: %v", ErrInternal, err)
		}
	default:
		return ErrInvalidSubject
	}

	_, err = s.Schedule(ctx, check.CheckSubject, now)
	return err
}

// releaseParent освобождает посадку или завершает бронь. Для брони возвращает ее, если письмо с отзывом еще не отправлялось.
func (s *Service) releaseParent(ctx context.Context, subject domain.CheckSubject, now time.Time) (*domain.Reservation, error) {
	switch {
	case subject.Kind == domain.CheckDineIn && subject.DineInID != nil:
		dineIn, err := s.dineIns.GetByID(ctx, *subject.DineInID)
		if err != nil {
			return nil, fmt.Errorf("%w: releaseParent - get dine-in: %v", ErrInternal, err)
		}
		if _, err := s.dineIns.Release(ctx, dineIn.ID); err != nil {
			return nil, fmt.Errorf("%w: releaseParent - release dine-in: %v", ErrInternal, err)
		}
		if _, err := s.locks.ReleaseHeld(ctx, dineIn.TableIDs, domain.DineInHolder(dineIn.ID)); err != nil {
			return nil, fmt.Errorf("%w: releaseParent - release locks: %v", ErrInternal, err)
		}
		return nil, nil

	case subject.Kind == domain.CheckReservation && subject.ReservationID != nil:
		res, err := s.reservations.GetByID(ctx, *subject.ReservationID)
		if err != nil {
			return nil, fmt.Errorf("%w: releaseParent - get reservation: %v", ErrInternal, err)
		}
		if _, err := s.reservations.UpdateStatusFrom(ctx, res.ID,
			[]domain.ReservationStatus{domain.StatusSeated}, domain.StatusCompleted); err != nil {
			return nil, fmt.Errorf("%w: releaseParent - complete reservation: %v", ErrInternal, err)
		}
		if _, err := s.locks.ReleaseHeld(ctx, res.TableIDs, domain.ReservationHolder(res.ID)); err != nil {
			return nil, fmt.Errorf("%w: releaseParent - release locks: %v", ErrInternal, err)
		}

		claimed, err := s.reservations.ClaimReview(ctx, res.ID, now)
		if err != nil {
			return nil, fmt.Errorf("%w: releaseParent - claim review: %v", ErrInternal, err)
		}
		if !claimed {
			return nil, nil
		}
		return res, nil

	default:
		return nil, ErrInvalidSubject
	}
}
