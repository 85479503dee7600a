package get_floor_status

import (
	"time"

	"github.com/m04kA/TableReservationService/pkg/types"
)

// Request модель запроса состояния зала
type Request struct {
	PartySize int              // Количество гостей
	Date      time.Time        // Календарная дата
	Time      types.TimeString // Время посадки
}

// Response состояние зала для выбора столов на схеме
type Response struct {
	OccupiedTableIDs  []int64 // Занятые в окне посадки столы
	EligibleTableIDs  []int64 // Свободные столы, подходящие компании
	SuggestedTableIDs []int64 // Предложение движка (пусто, если подбора нет)
	IsCombo           bool    // Предложение является комбинацией
}
