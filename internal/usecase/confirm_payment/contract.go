package confirm_payment

import (
	"context"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	"github.com/m04kA/ACS-ConsultationService/internal/integrations/notify"
	"github.com/m04kA/ACS-ConsultationService/internal/integrations/paymentgateway"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkPaid(ctx context.Context, id int64, orderID string) (bool, error)
}

// PaymentGatewayClient интерфейс клиента платёжного шлюза
type PaymentGatewayClient interface {
	GetOrderStatus(ctx context.Context, orderID string) (*paymentgateway.OrderStatus, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Send(ctx context.Context, msg notify.Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
