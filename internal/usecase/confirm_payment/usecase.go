package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/ACS-ConsultationService/internal/integrations/notify"
)

// notifyTimeout таймаут фоновой отправки уведомления
const notifyTimeout = 10 * time.Second

// Request модель запроса подтверждения оплаты
type Request struct {
	BookingID int64
	OrderID   string
}

// Response результат подтверждения
// AlreadyPaid = true означает повторный вызов для уже оплаченного
// бронирования — no-op, но успех
type Response struct {
	BookingID   int64
	AlreadyPaid bool
}

// UseCase use case подтверждения оплаты
//
// Переводит бронирование pending -> paid ровно один раз: переход делает
// условный UPDATE в репозитории, повторный вызов (ретрай вебхука) получает
// ноль затронутых строк, трактуется как no-op успех и не шлёт уведомления
// второй раз.
type UseCase struct {
	bookingRepo   BookingRepository
	paymentClient PaymentGatewayClient
	notifier      Notifier
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentClient PaymentGatewayClient,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		paymentClient: paymentClient,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute выполняет use case подтверждения оплаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.OrderID == "" {
		return nil, fmt.Errorf("%w: orderID is required", ErrInvalidInput)
	}

	uc.logger.Info("ConfirmPayment: booking id=%d, order id=%s", req.BookingID, req.OrderID)

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmPayment: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmPayment: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// Ретрай вебхука для уже оплаченного бронирования — no-op успех
	if booking.IsPaid() {
		uc.logger.Info("ConfirmPayment: booking id=%d already paid, no-op", req.BookingID)
		return &Response{BookingID: booking.ID, AlreadyPaid: true}, nil
	}

	// Сверяем статус заказа со шлюзом: таймаут или любой не-paid статус
	// означает "не подтверждено", а не "оплачено"
	status, err := uc.paymentClient.GetOrderStatus(ctx, req.OrderID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to get order status order_id=%s: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: failed to get order status: %v", ErrInternal, err)
	}
	if !status.IsPaid() {
		uc.logger.Warn("ConfirmPayment: order id=%s has status %q, not confirming", req.OrderID, status.Status)
		return nil, ErrNotConfirmed
	}

	transitioned, err := uc.bookingRepo.MarkPaid(ctx, req.BookingID, req.OrderID)
	if err != nil {
		// Частичный уникальный индекс: слот успел занять другой оплаченный
		// клиент, это бронирование проиграло гонку за слот
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			uc.logger.Warn("ConfirmPayment: booking id=%d lost slot race", req.BookingID)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("ConfirmPayment: failed to mark booking id=%d paid: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to mark paid: %v", ErrInternal, err)
	}

	if !transitioned {
		// Конкурирующий вызов успел сделать переход первым
		uc.logger.Info("ConfirmPayment: booking id=%d concurrently confirmed, no-op", req.BookingID)
		return &Response{BookingID: booking.ID, AlreadyPaid: true}, nil
	}

	uc.logger.Info("ConfirmPayment: booking id=%d marked paid", req.BookingID)

	// Уведомления best-effort: отправляются только в вызове, совершившем
	// переход, ошибки логируются и не влияют на результат
	uc.sendNotification(booking)

	return &Response{BookingID: booking.ID, AlreadyPaid: false}, nil
}

func (uc *UseCase) sendNotification(booking *domain.Booking) {
	// Уведомления могут быть выключены конфигурацией
	if uc.notifier == nil {
		return
	}

	msg := notify.Message{
		BookingID:     booking.ID,
		Name:          booking.Name,
		Email:         booking.Email,
		Phone:         booking.Phone,
		ScheduledDate: booking.ScheduledDate.Format(domain.DateFormat),
		TimeSlot:      booking.TimeSlot,
		Amount:        booking.Amount,
		Currency:      booking.Currency,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifier.Send(ctx, msg); err != nil {
			uc.logger.Error("ConfirmPayment: notification failed for booking id=%d: %v", booking.ID, err)
		}
	}()
}
