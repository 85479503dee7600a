package assignment

import "errors"

var (
	// ErrInvalidPartySize возвращается для размера компании меньше 1
	ErrInvalidPartySize = errors.New("assignment: party size must be at least 1")

	// ErrCatalog возвращается при ошибке чтения каталога столов
	ErrCatalog = errors.New("assignment: failed to read table catalog")

	// ErrOccupancy возвращается при ошибке вычисления занятости
	ErrOccupancy = errors.New("assignment: failed to resolve occupancy")
)
