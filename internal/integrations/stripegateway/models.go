package stripegateway

// Типы событий, которые обрабатывает сервис
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// MetadataReservationID ключ метаданных с идентификатором брони
const MetadataReservationID = "reservationId"

// Intent созданное платежное намерение
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Event проверенное событие вебхука
type Event struct {
	ID              string
	Type            string
	PaymentIntentID string
	ReservationID   string
}
