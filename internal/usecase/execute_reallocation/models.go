package execute_reallocation

import (
	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// Request модель запроса на пересадку
type Request struct {
	BlockerID          uuid.UUID          // ID посадки или брони, занимающей мостовой стол
	BlockerType        domain.BlockerType // dine_in или reservation
	FromTableIDs       []int64            // Освобождаемые столы
	ToTableIDs         []int64            // Новые столы гостей
	LargeReservationID uuid.UUID          // Большая бронь, для которой освобождаем столы
}

// Response результат пересадки
type Response struct {
	BlockerID uuid.UUID
	TableIDs  []int64 // Столы гостей после пересадки
}
