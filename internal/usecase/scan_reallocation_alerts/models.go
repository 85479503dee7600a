package scan_reallocation_alerts

import (
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// Options параметры сканирования
type Options struct {
	LookAhead time.Duration  // Горизонт поиска предстоящих броней
	Location  *time.Location // Зона ресторана
}

// Response найденные конфликты
type Response struct {
	Alerts []domain.ReallocationAlert
}
