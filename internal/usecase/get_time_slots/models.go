package get_time_slots

import (
	"time"

	"github.com/m04kA/TableReservationService/pkg/types"
)

// Request модель запроса сетки слотов
type Request struct {
	Date      time.Time // Календарная дата
	PartySize int       // Количество гостей
}

// Slot слот посадки
type Slot struct {
	Time      types.TimeString // Время слота (например, "11:30")
	Available bool             // Найдены ли столы на это время
}

// Response сетка слотов на дату
type Response struct {
	Date  time.Time
	Slots []Slot
}
