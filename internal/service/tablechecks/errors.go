package tablechecks

import "errors"

var (
	// ErrCheckNotFound возвращается, когда проверка не найдена
	ErrCheckNotFound = errors.New("tablechecks: check not found")

	// ErrAlreadyResponded возвращается при повторном ответе на проверку
	ErrAlreadyResponded = errors.New("tablechecks: check already responded")

	// ErrInvalidResponse возвращается для неизвестного ответа
	ErrInvalidResponse = errors.New("tablechecks: invalid response")

	// ErrInvalidSubject возвращается для проверки без родителя
	ErrInvalidSubject = errors.New("tablechecks: check has no parent")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("tablechecks: internal error")
)
