package stripegateway

import "errors"

var (
	// ErrNotConfigured возвращается, когда ключи Stripe не заданы
	ErrNotConfigured = errors.New("stripegateway: stripe is not configured")

	// ErrCreateIntent возвращается при ошибке создания платежного намерения
	ErrCreateIntent = errors.New("stripegateway: failed to create payment intent")

	// ErrInvalidSignature возвращается при неверной подписи вебхука
	ErrInvalidSignature = errors.New("stripegateway: invalid webhook signature")

	// ErrInvalidPayload возвращается, когда тело события не удалось разобрать
	ErrInvalidPayload = errors.New("stripegateway: invalid event payload")
)
