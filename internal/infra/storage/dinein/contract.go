package dinein

import "github.com/m04kA/TableReservationService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
