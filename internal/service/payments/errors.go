package payments

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrDepositNotRequired возвращается, когда бронь не ждет депозита
	ErrDepositNotRequired = errors.New("reservation does not require a deposit")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidSignature возвращается при неверной подписи вебхука
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrPaymentsDisabled возвращается, когда платежный провайдер не настроен
	ErrPaymentsDisabled = errors.New("payments are not configured")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
