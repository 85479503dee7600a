package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
	reservationRepo "github.com/m04kA/TableReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/TableReservationService/internal/service/reservations/models"
	"github.com/m04kA/TableReservationService/internal/service/timeslots"
)

// Имена прогонов в метриках
const (
	SweepReminders      = "reminders"
	SweepReviewRequests = "review-requests"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	locks           LockManager
	checks          CheckScheduler
	notifier        Notifier
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	location        *time.Location
	reviewDelay     time.Duration
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	locks LockManager,
	checks CheckScheduler,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	reviewDelay time.Duration,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		reservationRepo: reservationRepo,
		locks:           locks,
		checks:          checks,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    RealTimeProvider{},
		location:        location,
		reviewDelay:     reviewDelay,
		logger:          logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.ReservationResponse, error) {
	res, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainReservation(res), nil
}

// Cancel отменяет бронирование и снимает его замки
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Cancel: cancelling reservation id=%s", id)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		res, err := s.get(ctx, "Cancel", id)
		if err != nil {
			return err
		}

		// Проверяем, можно ли отменить бронирование
		if !res.CanBeCancelled() {
			s.logger.Warn("Cancel: reservation id=%s cannot be cancelled, status=%s", id, res.Status)
			return ErrCannotCancel
		}

		ok, err := s.reservationRepo.UpdateStatusFrom(ctx, id,
			[]domain.ReservationStatus{domain.StatusDepositRequired, domain.StatusConfirmed, domain.StatusDepositPaid},
			domain.StatusCancelled)
		if err != nil {
			return fmt.Errorf("%w: Cancel - update status: %v", ErrInternal, err)
		}
		if !ok {
			return ErrCannotCancel
		}

		if _, err := s.locks.ReleaseHeld(ctx, res.TableIDs, domain.ReservationHolder(res.ID)); err != nil {
			return fmt.Errorf("%w: Cancel - release locks: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%s", id)
	return nil
}

// Seat рассаживает бронь и планирует первую проверку
func (s *Service) Seat(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Seat: seating reservation id=%s", id)
	now := s.timeProvider.Now()

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		res, err := s.get(ctx, "Seat", id)
		if err != nil {
			return err
		}

		if !res.CanBeSeated() {
			s.logger.Warn("Seat: reservation id=%s cannot be seated, status=%s", id, res.Status)
			return ErrCannotSeat
		}

		ok, err := s.reservationRepo.MarkSeated(ctx, id, now)
		if err != nil {
			return fmt.Errorf("%w: Seat - mark seated: %v", ErrInternal, err)
		}
		if !ok {
			return ErrCannotSeat
		}

		if _, err := s.checks.Schedule(ctx, domain.ReservationSubject(id), now); err != nil {
			return fmt.Errorf("%w: Seat - schedule check: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Seat: reservation id=%s seated", id)
	return nil
}

// ListUpcoming бронирования на сегодня, которые еще не завершены
func (s *Service) ListUpcoming(ctx context.Context) (*models.ReservationListResponse, error) {
	today := timeslots.Today(s.timeProvider.Now(), s.location)

	items, err := s.reservationRepo.ListByDate(ctx, today)
	if err != nil {
		s.logger.Error("ListUpcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUpcoming - repository error: %v", ErrInternal, err)
	}

	upcoming := make([]*domain.Reservation, 0, len(items))
	for _, r := range items {
		switch r.Status {
		case domain.StatusDepositRequired, domain.StatusConfirmed, domain.StatusDepositPaid, domain.StatusSeated:
			upcoming = append(upcoming, r)
		}
	}

	return models.FromDomainReservationList(upcoming), nil
}

// SendReminders напоминания о завтрашних бронях. Каждое письмо уходит один раз.
func (s *Service) SendReminders(ctx context.Context, now time.Time) (int, error) {
	tomorrow := timeslots.Today(now, s.location).AddDate(0, 0, 1)

	items, err := s.reservationRepo.ListForReminder(ctx, tomorrow)
	if err != nil {
		return 0, fmt.Errorf("%w: SendReminders - list: %v", ErrInternal, err)
	}

	sent := 0
	for _, r := range items {
		ok, err := s.reservationRepo.ClaimReminder(ctx, r.ID, now)
		if err != nil {
			s.logger.Error("SendReminders: claim reservation id=%s: %v", r.ID, err)
			continue
		}
		if !ok {
			continue
		}
		s.notifier.Send(ctx, r.Email, domain.NotifyReservationReminder, domain.ReservationNotificationData(r))
		sent++
	}

	s.metrics.ObserveSweep(SweepReminders, sent)
	return sent, nil
}

// SendReviewRequests просьбы об отзыве гостям, рассаженным больше reviewDelay назад
func (s *Service) SendReviewRequests(ctx context.Context, now time.Time) (int, error) {
	items, err := s.reservationRepo.ListForReview(ctx, now.Add(-s.reviewDelay))
	if err != nil {
		return 0, fmt.Errorf("%w: SendReviewRequests - list: %v", ErrInternal, err)
	}

	sent := 0
	for _, r := range items {
		ok, err := s.reservationRepo.ClaimReview(ctx, r.ID, now)
		if err != nil {
			s.logger.Error("SendReviewRequests: claim reservation id=%s: %v", r.ID, err)
			continue
		}
		if !ok {
			continue
		}
		s.notifier.Send(ctx, r.Email, domain.NotifyReviewRequest, domain.ReservationNotificationData(r))
		sent++
	}

	s.metrics.ObserveSweep(SweepReviewRequests, sent)
	return sent, nil
}

func (s *Service) get(ctx context.Context, op string, id uuid.UUID) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%s not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}
