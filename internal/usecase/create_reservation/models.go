package create_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName string           `validate:"min=2,max=100"`            // Имя гостя
	Email        string           `validate:"required,email"`           // Email для писем
	Phone        *string          `validate:"omitempty,max=32"`         // Телефон (опционально)
	PartySize    int              `validate:"min=1"`                    // Количество гостей
	Date         time.Time        `validate:"required"`                 // Календарная дата
	Time         types.TimeString `validate:"required"`                 // Время посадки (например, "19:00")
	TableIDs     []int64          `validate:"required,min=1,dive,gt=0"` // Выбранные столы
	Notes        *string          `validate:"omitempty,max=500"`        // Пожелания (опционально)

	IsAdmin              bool // Бронь создана администратором
	WaiveDeposit         bool // Администратор отменил депозит
	RequiresReallocation bool // Столы освободятся только после пересадки гостей с мостового стола
}

// Response модель ответа с созданным бронированием
type Response struct {
	ReservationID   uuid.UUID // ID созданного бронирования
	Status          string    // Начальный статус
	RequiresDeposit bool      // Нужна оплата депозита
}
