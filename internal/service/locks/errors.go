package locks

import "errors"

var (
	// ErrLockConflict возвращается, когда хотя бы один стол удерживает другой владелец
	ErrLockConflict = errors.New("locks: table is held by another party")

	// ErrNoTables возвращается при пустом списке столов
	ErrNoTables = errors.New("locks: no tables given")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("locks: internal error")
)
