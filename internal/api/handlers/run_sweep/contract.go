package run_sweep

import "context"

type SweepRunner interface {
	Run(ctx context.Context, name string) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
