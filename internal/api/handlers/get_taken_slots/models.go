package get_taken_slots

import (
	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// TakenSlotItem занятая пара (дата, слот) в ответе API
type TakenSlotItem struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

// TakenSlotsResponse HTTP response model
type TakenSlotsResponse struct {
	TakenSlots []TakenSlotItem `json:"takenSlots"`
}

// FromDomainTakenSlots конвертирует занятые слоты в HTTP response
func FromDomainTakenSlots(taken []domain.TakenSlot) *TakenSlotsResponse {
	out := make([]TakenSlotItem, 0, len(taken))
	for _, t := range taken {
		out = append(out, TakenSlotItem{
			Date:     t.Date.Format(domain.DateFormat),
			TimeSlot: t.TimeSlot,
		})
	}
	return &TakenSlotsResponse{TakenSlots: out}
}
