package tablelock

import "errors"

var (
	ErrBuildQuery = errors.New("tablelock.repository: failed to build query")
	ErrExecQuery  = errors.New("tablelock.repository: failed to execute query")
	ErrScanRow    = errors.New("tablelock.repository: failed to scan row")

	// ErrNoTables возвращается при попытке записать замок без столов
	ErrNoTables = errors.New("tablelock.repository: no tables given")
)
