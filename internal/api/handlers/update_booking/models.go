package update_booking

import (
	"github.com/m04kA/ACS-ConsultationService/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model
// Все поля опциональны, применяются только переданные
type UpdateBookingRequest struct {
	Status      *string `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	MeetingLink *string `json:"meetingLink,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest() *models.UpdateBookingRequest {
	return &models.UpdateBookingRequest{
		Status:      r.Status,
		Notes:       r.Notes,
		MeetingLink: r.MeetingLink,
	}
}
