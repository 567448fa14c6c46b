package models

import (
	"fmt"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// ListBookingsRequest запрос списка бронирований в админке
type ListBookingsRequest struct {
	StartDate     *time.Time
	EndDate       *time.Time
	PaymentStatus *string
	Status        *string
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.PaymentStatus != nil {
		status, err := ToDomainPaymentStatus(*r.PaymentStatus)
		if err != nil {
			return domain.BookingsFilter{}, err
		}
		filter.PaymentStatus = &status
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return domain.BookingsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateBookingRequest запрос оператора на изменение бронирования
// Все поля опциональны; nil = не менять
type UpdateBookingRequest struct {
	Status      *string
	Notes       *string
	MeetingLink *string
}

// StatsRequest запрос сводки за период
type StatsRequest struct {
	From time.Time
	To   time.Time
}

// BookingResponse модель бронирования для выдачи наружу
type BookingResponse struct {
	ID               int64     `json:"id"`
	ConsultationType string    `json:"consultationType"`
	WithReport       bool      `json:"withReport"`
	DurationMinutes  int       `json:"durationMinutes"`
	ScheduledDate    time.Time `json:"scheduledDate"`
	TimeSlot         string    `json:"timeSlot"`
	Name             string    `json:"name"`
	DateOfBirth      time.Time `json:"dateOfBirth"`
	TimeOfBirth      string    `json:"timeOfBirth"`
	PlaceOfBirth     string    `json:"placeOfBirth"`
	Gender           string    `json:"gender"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Concern          string    `json:"concern"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	PromoCode        *string   `json:"promoCode,omitempty"`
	DiscountPercent  int       `json:"discountPercent"`
	DiscountAmount   float64   `json:"discountAmount"`
	PaymentStatus    string    `json:"paymentStatus"`
	PaymentOrderID   *string   `json:"paymentOrderId,omitempty"`
	Status           string    `json:"status"`
	Notes            *string   `json:"notes,omitempty"`
	MeetingLink      *string   `json:"meetingLink,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain бронирование в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               b.ID,
		ConsultationType: string(b.ConsultationType),
		WithReport:       b.WithReport,
		DurationMinutes:  b.DurationMinutes,
		ScheduledDate:    b.ScheduledDate,
		TimeSlot:         b.TimeSlot,
		Name:             b.Name,
		DateOfBirth:      b.DateOfBirth,
		TimeOfBirth:      b.TimeOfBirth,
		PlaceOfBirth:     b.PlaceOfBirth,
		Gender:           b.Gender,
		Email:            b.Email,
		Phone:            b.Phone,
		Concern:          b.Concern,
		Amount:           b.Amount,
		Currency:         b.Currency,
		PromoCode:        b.PromoCode,
		DiscountPercent:  b.DiscountPercent,
		DiscountAmount:   b.DiscountAmount,
		PaymentStatus:    string(b.PaymentStatus),
		PaymentOrderID:   b.PaymentOrderID,
		Status:           string(b.Status),
		Notes:            b.Notes,
		MeetingLink:      b.MeetingLink,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result, Total: len(result)}
}

// ToDomainBookingStatus валидирует и конвертирует жизненный статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusUpcoming, domain.StatusCompleted, domain.StatusCancelled:
		return domain.BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// ToDomainPaymentStatus валидирует и конвертирует статус оплаты
func ToDomainPaymentStatus(s string) (domain.PaymentStatus, error) {
	switch domain.PaymentStatus(s) {
	case domain.PaymentPending, domain.PaymentPaid:
		return domain.PaymentStatus(s), nil
	default:
		return "", fmt.Errorf("unknown payment status %q", s)
	}
}
