package domain

import "time"

// AvailabilityTemplate повторяющееся предложение слота в заданный день недели
// Пара (Weekday, TimeSlot) уникальна среди шаблонов
type AvailabilityTemplate struct {
	ID        int64
	Weekday   int    // 0 = воскресенье ... 6 = суббота (time.Weekday)
	TimeSlot  string // Метка слота, например "10:00 AM - 11:00 AM"
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlockedDate календарная дата, полностью исключённая из бронирования
type BlockedDate struct {
	ID        int64
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}
