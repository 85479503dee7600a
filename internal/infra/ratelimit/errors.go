package ratelimit

import "errors"

var (
	// ErrStore возвращается при ошибке хранилища счетчиков
	ErrStore = errors.New("ratelimit: counter store failure")
)
