package check_availability

import (
	"time"

	"github.com/m04kA/TableReservationService/pkg/types"
)

// ReasonTooLarge компания больше максимально допустимой
const ReasonTooLarge = "too_large"

// Request модель запроса проверки доступности
type Request struct {
	PartySize int              // Количество гостей
	Date      time.Time        // Календарная дата
	Time      types.TimeString // Время посадки (например, "19:00")
}

// Response результат проверки
type Response struct {
	Available              bool    // Есть ли подходящие столы
	Reason                 string  // Причина отказа без обращения к хранилищу (too_large)
	TableIDs               []int64 // Предлагаемые столы
	IsCombo                bool    // Столы объединяются в комбинацию
	RequiresReallocation   bool    // Нужна пересадка гостей с мостового стола
	ReallocationSuggestion string  // Подсказка для администратора
}
