package get_reallocation_alerts

import (
	"context"

	scanAlerts "github.com/m04kA/TableReservationService/internal/usecase/scan_reallocation_alerts"
)

type ScanAlertsUseCase interface {
	Execute(ctx context.Context) (*scanAlerts.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
