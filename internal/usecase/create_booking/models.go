package create_booking

import (
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ConsultationType domain.ConsultationType
	WithReport       bool
	DurationMinutes  int
	Date             time.Time // Дата консультации (без времени)
	TimeSlot         string    // Метка слота, например "10:00 AM - 11:00 AM"

	Name         string
	DateOfBirth  time.Time
	TimeOfBirth  string // "HH:MM"
	PlaceOfBirth string
	Gender       string
	Email        string
	Phone        string
	Concern      string

	BaseAmount float64 // Цена консультации до скидки
	Currency   string  // Пустое значение = валюта по умолчанию
	PromoCode  *string // Опционально
}

// Response модель ответа с созданным бронированием и платёжной сессией
type Response struct {
	BookingID       int64
	ScheduledDate   time.Time
	TimeSlot        string
	BaseAmount      float64
	DiscountPercent int
	DiscountAmount  float64
	FinalAmount     float64
	Currency        string
	PromoApplied    bool
	PaymentStatus   string
	OrderID         string
	SessionToken    string
}
