package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	ListActiveByWeekday(ctx context.Context, weekday int) ([]*domain.AvailabilityTemplate, error)
	IsDateBlocked(ctx context.Context, date time.Time) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListTakenSlots(ctx context.Context, from time.Time) ([]domain.TakenSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
