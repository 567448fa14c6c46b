package get_available_slots

import (
	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	getAvailableSlots "github.com/m04kA/ACS-ConsultationService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string   `json:"date"`
	Blocked    bool     `json:"blocked"`
	Slots      []string `json:"slots"`
	TakenSlots []string `json:"takenSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := resp.Slots
	if slots == nil {
		slots = []string{}
	}
	taken := resp.TakenSlots
	if taken == nil {
		taken = []string{}
	}
	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		Blocked:    resp.Blocked,
		Slots:      slots,
		TakenSlots: taken,
	}
}
