package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	"github.com/m04kA/ACS-ConsultationService/internal/integrations/paymentgateway"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindPaidBySlot(ctx context.Context, date time.Time, timeSlot string) (*domain.Booking, error)
	FindPendingBySlotAndEmail(ctx context.Context, date time.Time, timeSlot, email string) (*domain.Booking, error)
	SetPaymentOrder(ctx context.Context, id int64, orderID string) error
}

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	ListActiveByWeekday(ctx context.Context, weekday int) ([]*domain.AvailabilityTemplate, error)
	IsDateBlocked(ctx context.Context, date time.Time) (bool, error)
}

// PromoRepository интерфейс счётчика применений промокодов
type PromoRepository interface {
	TryRedeem(ctx context.Context, code string, now time.Time) (*domain.RedemptionResult, error)
}

// PaymentGatewayClient интерфейс клиента платёжного шлюза
type PaymentGatewayClient interface {
	CreateOrder(ctx context.Context, bookingID int64, amount float64, currency string, customer paymentgateway.Customer) (*paymentgateway.Order, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
