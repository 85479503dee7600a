package get_time_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_time_slots: invalid input data")

	// ErrInternal возвращается, когда не удалось проверить ни один слот
	ErrInternal = errors.New("get_time_slots: internal error")
)
