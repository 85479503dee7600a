package dinein

import "errors"

var (
	// ErrDineInNotFound возвращается, когда посадка без брони не найдена
	ErrDineInNotFound = errors.New("dinein.repository: dine-in not found")

	ErrBuildQuery = errors.New("dinein.repository: failed to build query")
	ErrExecQuery  = errors.New("dinein.repository: failed to execute query")
	ErrScanRow    = errors.New("dinein.repository: failed to scan row")
)
