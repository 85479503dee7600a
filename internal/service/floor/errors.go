package floor

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrTableNotFound возвращается для неизвестного стола
	ErrTableNotFound = errors.New("table not found")

	// ErrTablesOccupied возвращается, когда столы уже заняты
	ErrTablesOccupied = errors.New("tables already occupied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
