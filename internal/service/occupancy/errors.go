package occupancy

import "errors"

var (
	// ErrInvalidTime возвращается при некорректном времени запроса
	ErrInvalidTime = errors.New("occupancy: invalid time")

	// ErrRead возвращается при ошибке чтения хранилища
	ErrRead = errors.New("occupancy: failed to read store")
)
