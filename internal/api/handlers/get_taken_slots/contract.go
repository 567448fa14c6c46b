package get_taken_slots

import (
	"context"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

type BookingService interface {
	ListTakenSlots(ctx context.Context, from time.Time) ([]domain.TakenSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
