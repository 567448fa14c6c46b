package domain

import "time"

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// BookingStatus жизненный статус консультации
type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ConsultationType тип консультации
type ConsultationType string

const (
	ConsultationNormal ConsultationType = "normal"
	ConsultationUrgent ConsultationType = "urgent"
)

// Booking представляет бронирование одного слота консультации
//
// Слот (ScheduledDate, TimeSlot) считается занятым только бронированием
// со статусом оплаты paid. Pending-записи слот не держат.
type Booking struct {
	ID               int64
	ConsultationType ConsultationType
	WithReport       bool // Дополнительный письменный разбор к консультации
	DurationMinutes  int
	ScheduledDate    time.Time
	TimeSlot         string // Метка слота, байт-в-байт совпадает с шаблоном доступности

	// Данные клиента
	Name         string
	DateOfBirth  time.Time
	TimeOfBirth  string
	PlaceOfBirth string
	Gender       string
	Email        string
	Phone        string
	Concern      string

	// Денормализованный снимок цены на момент создания:
	// последующие изменения промокода не влияют на историю
	Amount          float64
	Currency        string
	PromoCode       *string
	DiscountPercent int
	DiscountAmount  float64

	PaymentStatus  PaymentStatus
	PaymentOrderID *string
	Status         BookingStatus

	// Заполняются оператором
	Notes       *string
	MeetingLink *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid возвращает true, если бронирование оплачено
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// HoldsSlot возвращает true, если бронирование удерживает слот
func (b *Booking) HoldsSlot() bool {
	return b.PaymentStatus == PaymentPaid
}

// CanTransitionTo проверяет допустимость перехода жизненного статуса
// Переходы разрешены оператору и только из статуса upcoming
func (b *Booking) CanTransitionTo(status BookingStatus) bool {
	if b.Status != StatusUpcoming {
		return false
	}
	return status == StatusCompleted || status == StatusCancelled
}

// BookingsFilter фильтр для выборки бронирований в админке
type BookingsFilter struct {
	StartDate     *time.Time     // Начало периода (опционально)
	EndDate       *time.Time     // Конец периода (опционально)
	PaymentStatus *PaymentStatus // Фильтр по статусу оплаты (опционально)
	Status        *BookingStatus // Фильтр по жизненному статусу (опционально)
}

// TakenSlot занятая пара (дата, слот)
type TakenSlot struct {
	Date     time.Time
	TimeSlot string
}

// BookingStats сводка по бронированиям за период для админской аналитики
type BookingStats struct {
	Total       int
	Paid        int
	Upcoming    int
	Completed   int
	Cancelled   int
	PaidRevenue float64
}
