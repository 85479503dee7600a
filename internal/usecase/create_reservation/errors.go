package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrPartyTooLarge возвращается, когда компания больше допустимой для онлайн-брони
	ErrPartyTooLarge = errors.New("create_reservation: party is too large to book online")

	// ErrDateInPast возвращается, когда дата бронирования уже прошла
	ErrDateInPast = errors.New("create_reservation: date cannot be in the past")

	// ErrInvalidTimeSlot возвращается, когда время не является слотом посадки на эту дату
	ErrInvalidTimeSlot = errors.New("create_reservation: time is not a service slot")

	// ErrTableNotFound возвращается для неизвестного стола
	ErrTableNotFound = errors.New("create_reservation: table not found")

	// ErrTablesUnavailable возвращается, когда столы заняты или их успел захватить другой гость
	ErrTablesUnavailable = errors.New("create_reservation: tables are no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
