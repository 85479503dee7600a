package scheduler

import "errors"

var (
	// ErrUnknownJob возвращается для незарегистрированного прогона
	ErrUnknownJob = errors.New("scheduler: unknown job")

	// ErrInvalidSchedule возвращается при некорректном cron-выражении
	ErrInvalidSchedule = errors.New("scheduler: invalid schedule")
)
