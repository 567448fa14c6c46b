package list_bookings

import (
	"context"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	"github.com/m04kA/ACS-ConsultationService/internal/service/bookings/models"
)

type BookingService interface {
	List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
	Stats(ctx context.Context, req *models.StatsRequest) (*domain.BookingStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
