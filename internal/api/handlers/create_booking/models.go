package create_booking

import (
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	createBooking "github.com/m04kA/ACS-ConsultationService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ConsultationType string  `json:"consultationType"`
	WithReport       bool    `json:"withReport"`
	DurationMinutes  int     `json:"durationMinutes"`
	Date             string  `json:"date"`     // "2026-09-15"
	TimeSlot         string  `json:"timeSlot"` // "10:00 AM - 11:00 AM"
	Name             string  `json:"name"`
	DateOfBirth      string  `json:"dateOfBirth"` // "1990-04-21"
	TimeOfBirth      string  `json:"timeOfBirth"` // "14:30"
	PlaceOfBirth     string  `json:"placeOfBirth"`
	Gender           string  `json:"gender"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Concern          string  `json:"concern"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency,omitempty"`
	PromoCode        *string `json:"promoCode,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	BookingID       int64   `json:"bookingId"`
	Date            string  `json:"date"`
	TimeSlot        string  `json:"timeSlot"`
	BaseAmount      float64 `json:"baseAmount"`
	DiscountPercent int     `json:"discountPercent"`
	DiscountAmount  float64 `json:"discountAmount"`
	FinalAmount     float64 `json:"finalAmount"`
	Currency        string  `json:"currency"`
	PromoApplied    bool    `json:"promoApplied"`
	PaymentStatus   string  `json:"paymentStatus"`
	OrderID         string  `json:"orderId,omitempty"`
	SessionToken    string  `json:"sessionToken,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	dateOfBirth, err := time.Parse(domain.DateFormat, r.DateOfBirth)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ConsultationType: domain.ConsultationType(r.ConsultationType),
		WithReport:       r.WithReport,
		DurationMinutes:  r.DurationMinutes,
		Date:             date,
		TimeSlot:         r.TimeSlot,
		Name:             r.Name,
		DateOfBirth:      dateOfBirth,
		TimeOfBirth:      r.TimeOfBirth,
		PlaceOfBirth:     r.PlaceOfBirth,
		Gender:           r.Gender,
		Email:            r.Email,
		Phone:            r.Phone,
		Concern:          r.Concern,
		BaseAmount:       r.Amount,
		Currency:         r.Currency,
		PromoCode:        r.PromoCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingID:       resp.BookingID,
		Date:            resp.ScheduledDate.Format(domain.DateFormat),
		TimeSlot:        resp.TimeSlot,
		BaseAmount:      resp.BaseAmount,
		DiscountPercent: resp.DiscountPercent,
		DiscountAmount:  resp.DiscountAmount,
		FinalAmount:     resp.FinalAmount,
		Currency:        resp.Currency,
		PromoApplied:    resp.PromoApplied,
		PaymentStatus:   resp.PaymentStatus,
		OrderID:         resp.OrderID,
		SessionToken:    resp.SessionToken,
	}
}
