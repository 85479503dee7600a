package execute_reallocation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("execute_reallocation: invalid input data")

	// ErrReservationNotFound возвращается, когда большая бронь не найдена
	ErrReservationNotFound = errors.New("execute_reallocation: reservation not found")

	// ErrBlockerNotFound возвращается, когда пересаживаемые гости не найдены
	ErrBlockerNotFound = errors.New("execute_reallocation: blocking party not found")

	// ErrTableNotFound возвращается для неизвестного стола
	ErrTableNotFound = errors.New("execute_reallocation: table not found")

	// ErrTargetsOccupied возвращается, когда целевые столы уже удерживает кто-то другой
	ErrTargetsOccupied = errors.New("execute_reallocation: target tables are occupied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("execute_reallocation: internal error")
)
