package scan_reallocation_alerts

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("scan_reallocation_alerts: internal error")
)
