package tablecheck

import "errors"

var (
	// ErrCheckNotFound возвращается, когда проверка стола не найдена
	ErrCheckNotFound = errors.New("tablecheck.repository: check not found")

	ErrBuildQuery = errors.New("tablecheck.repository: failed to build query")
	ErrExecQuery  = errors.New("tablecheck.repository: failed to execute query")
	ErrScanRow    = errors.New("tablecheck.repository: failed to scan row")
)
