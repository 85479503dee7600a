package models

// CreateIntentRequest запрос на создание депозита
type CreateIntentRequest struct {
	ReservationID string `json:"reservationId"`
}

// CreateIntentResponse данные для оплаты на клиенте
type CreateIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// WebhookResponse подтверждение приема события
type WebhookResponse struct {
	Received bool `json:"received"`
}
