package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
	reservationRepo "github.com/m04kA/TableReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/TableReservationService/internal/integrations/stripegateway"
	"github.com/m04kA/TableReservationService/internal/service/payments/models"
)

// DepositPolicy сумма и условия депозита
type DepositPolicy struct {
	MinPartySize int
	AmountCents  int64
	Currency     string
}

// Service депозиты крупных компаний
type Service struct {
	gateway      PaymentGateway
	reservations ReservationRepository
	locks        LockManager
	notifier     Notifier
	policy       DepositPolicy
	logger       Logger
}

// NewService создает сервис платежей
func NewService(
	gateway PaymentGateway,
	reservations ReservationRepository,
	locks LockManager,
	notifier Notifier,
	policy DepositPolicy,
	logger Logger,
) *Service {
	return &Service{
		gateway:      gateway,
		reservations: reservations,
		locks:        locks,
		notifier:     notifier,
		policy:       policy,
		logger:       logger,
	}
}

// CreateIntent создает платежное намерение на депозит и сохраняет его id в брони
func (s *Service) CreateIntent(ctx context.Context, req *models.CreateIntentRequest) (*models.CreateIntentResponse, error) {
	id, err := uuid.Parse(req.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: reservationId must be a uuid", ErrInvalidInput)
	}

	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("%w: CreateIntent - get reservation: %v", ErrInternal, err)
	}

	// Депозит только для ожидающих оплаты крупных компаний
	if res.Status != domain.StatusDepositRequired || res.PartySize < s.policy.MinPartySize {
		s.logger.Warn("CreateIntent: reservation id=%s status=%s party=%d does not require deposit", id, res.Status, res.PartySize)
		return nil, ErrDepositNotRequired
	}

	intent, err := s.gateway.CreateIntent(ctx, s.policy.AmountCents, s.policy.Currency, map[string]string{
		stripegateway.MetadataReservationID: res.ID.String(),
		"customerName":                      res.CustomerName,
		"email":                             res.Email,
	})
	if err != nil {
		if errors.Is(err, stripegateway.ErrNotConfigured) {
			return nil, ErrPaymentsDisabled
		}
		s.logger.Error("CreateIntent: gateway error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: CreateIntent - gateway: %v", ErrInternal, err)
	}

	if err := s.reservations.SetPaymentIntent(ctx, res.ID, intent.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateIntent - store intent: %v", ErrInternal, err)
	}

	s.logger.Info("CreateIntent: intent %s created for reservation id=%s", intent.ID, id)
	return &models.CreateIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          s.policy.AmountCents,
		Currency:        s.policy.Currency,
	}, nil
}

// HandleWebhook применяет проверенное событие Stripe к брони.
// Неизвестные события и брони игнорируются, чтобы провайдер не повторял доставку.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseEvent(payload, signature)
	if err != nil {
		if errors.Is(err, stripegateway.ErrNotConfigured) {
			return ErrPaymentsDisabled
		}
		s.logger.Warn("HandleWebhook: rejected event: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	switch event.Type {
	case stripegateway.EventPaymentSucceeded:
		return s.onSucceeded(ctx, event)
	case stripegateway.EventPaymentFailed:
		return s.onFailed(ctx, event)
	default:
		s.logger.Info("HandleWebhook: ignoring event %s type=%s", event.ID, event.Type)
		return nil
	}
}

func (s *Service) onSucceeded(ctx context.Context, event *stripegateway.Event) error {
	id, ok := s.reservationID(event)
	if !ok {
		return nil
	}

	// Гейт по статусу: повторная доставка события не шлет письмо второй раз
	updated, err := s.reservations.MarkDepositPaid(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: onSucceeded - mark paid: %v", ErrInternal, err)
	}
	if !updated {
		s.logger.Info("HandleWebhook: reservation id=%s already processed", id)
		return nil
	}

	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("HandleWebhook: reload reservation id=%s: %v", id, err)
		return nil
	}

	s.notifier.Send(ctx, res.Email, domain.NotifyDepositConfirmation, domain.ReservationNotificationData(res))
	s.logger.Info("HandleWebhook: deposit paid for reservation id=%s", id)
	return nil
}

func (s *Service) onFailed(ctx context.Context, event *stripegateway.Event) error {
	id, ok := s.reservationID(event)
	if !ok {
		return nil
	}

	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("HandleWebhook: reservation id=%s not found", id)
			return nil
		}
		return fmt.Errorf("%w: onFailed - get reservation: %v", ErrInternal, err)
	}

	cancelled, err := s.reservations.UpdateStatusFrom(ctx, id,
		[]domain.ReservationStatus{domain.StatusDepositRequired}, domain.StatusCancelled)
	if err != nil {
		return fmt.Errorf("%w: onFailed - cancel: %v", ErrInternal, err)
	}
	if !cancelled {
		return nil
	}

	if _, err := s.locks.ReleaseHeld(ctx, res.TableIDs, domain.ReservationHolder(id)); err != nil {
		s.logger.Error("HandleWebhook: release locks of reservation id=%s: %v", id, err)
	}

	s.logger.Warn("HandleWebhook: payment failed, reservation id=%s cancelled", id)
	return nil
}

func (s *Service) reservationID(event *stripegateway.Event) (uuid.UUID, bool) {
	id, err := uuid.Parse(event.ReservationID)
	if err != nil {
		s.logger.Warn("HandleWebhook: event %s has no valid reservation id %q", event.ID, event.ReservationID)
		return uuid.Nil, false
	}
	return id, true
}
