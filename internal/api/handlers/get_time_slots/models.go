package get_time_slots

import (
	getTimeSlots "github.com/m04kA/TableReservationService/internal/usecase/get_time_slots"
)

// TimeSlotResponse слот в HTTP ответе
type TimeSlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует сетку слотов в HTTP ответ
func FromUseCaseResponse(resp *getTimeSlots.Response) []TimeSlotResponse {
	out := make([]TimeSlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		out = append(out, TimeSlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
		})
	}
	return out
}
