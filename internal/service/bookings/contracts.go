package bookings

import (
	"context"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	ListTakenSlots(ctx context.Context, from time.Time) ([]domain.TakenSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateOperatorFields(ctx context.Context, id int64, notes, meetingLink *string) error
	Stats(ctx context.Context, from, to time.Time) (*domain.BookingStats, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
