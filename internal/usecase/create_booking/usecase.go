package create_booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/ACS-ConsultationService/internal/integrations/paymentgateway"
)

// UseCase use case создания бронирования консультации
//
// Единственный путь записи, создающий бронирования. Гонка за слот решается
// сериализуемой транзакцией (проверка занятости + вставка в одной границе),
// гонка за промокод — атомарным условным инкрементом в хранилище.
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	promoRepo        PromoRepository
	paymentClient    PaymentGatewayClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	promoRepo PromoRepository,
	paymentClient PaymentGatewayClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		promoRepo:        promoRepo,
		paymentClient:    paymentClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, slot=%q, email=%s, type=%s",
		req.Date.Format(domain.DateFormat), req.TimeSlot, req.Email, req.ConsultationType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата не в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Дата не заблокирована
	blocked, err := uc.availabilityRepo.IsDateBlocked(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check blocked date: %v", err)
		return nil, fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
	}
	if blocked {
		uc.logger.Warn("CreateBooking: date %s is blocked", req.Date.Format(domain.DateFormat))
		return nil, ErrDateBlocked
	}

	// 4. Слот предлагается в этот день недели
	templates, err := uc.availabilityRepo.ListActiveByWeekday(ctx, int(req.Date.Weekday()))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get availability templates: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability templates: %v", ErrInternal, err)
	}
	if !slotOffered(templates, req.TimeSlot) {
		uc.logger.Warn("CreateBooking: slot %q is not offered on weekday %d", req.TimeSlot, int(req.Date.Weekday()))
		return nil, ErrSlotNotOffered
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	// 5. Повторная попытка оплаты: переиспользуем существующую pending-запись
	// того же клиента на тот же слот вместо вставки дубликата
	existing, err := uc.bookingRepo.FindPendingBySlotAndEmail(ctx, req.Date, req.TimeSlot, req.Email)
	if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("CreateBooking: failed to check pending duplicate: %v", err)
		return nil, fmt.Errorf("%w: failed to check pending duplicate: %v", ErrInternal, err)
	}
	if existing != nil {
		uc.logger.Info("CreateBooking: reusing pending booking id=%d for retry", existing.ID)
		return uc.initiatePayment(ctx, existing)
	}

	// 6. Применяем промокод атомарным инкрементом счётчика
	// Отказ (applied=false) — не ошибка: бронирование продолжается без скидки
	discountPercent := 0
	promoApplied := false
	var appliedCode *string

	if req.PromoCode != nil && *req.PromoCode != "" {
		result, err := uc.promoRepo.TryRedeem(ctx, *req.PromoCode, now)
		if err != nil {
			uc.logger.Error("CreateBooking: promo redemption failed: %v", err)
			return nil, fmt.Errorf("%w: promo redemption failed: %v", ErrInternal, err)
		}
		if result.Applied {
			discountPercent = result.DiscountPercent
			promoApplied = true
			code := domain.NormalizeCode(*req.PromoCode)
			appliedCode = &code
			uc.logger.Info("CreateBooking: promo %s applied, discount=%d%%", code, discountPercent)
		} else {
			uc.logger.Info("CreateBooking: promo %s not applied, proceeding at full price",
				domain.NormalizeCode(*req.PromoCode))
		}
	}

	// 7. Считаем итоговую сумму со снимком скидки
	// Пол в MinChargeAmount не даёт скидке опустить счёт до нуля
	discountAmount := math.Round(req.BaseAmount*float64(discountPercent)) / 100
	finalAmount := req.BaseAmount - discountAmount
	if finalAmount < domain.MinChargeAmount {
		finalAmount = domain.MinChargeAmount
	}

	booking := &domain.Booking{
		ConsultationType: req.ConsultationType,
		WithReport:       req.WithReport,
		DurationMinutes:  req.DurationMinutes,
		ScheduledDate:    req.Date,
		TimeSlot:         req.TimeSlot,
		Name:             req.Name,
		DateOfBirth:      req.DateOfBirth,
		TimeOfBirth:      req.TimeOfBirth,
		PlaceOfBirth:     req.PlaceOfBirth,
		Gender:           req.Gender,
		Email:            req.Email,
		Phone:            req.Phone,
		Concern:          req.Concern,
		Amount:           finalAmount,
		Currency:         currency,
		PromoCode:        appliedCode,
		DiscountPercent:  discountPercent,
		DiscountAmount:   discountAmount,
		PaymentStatus:    domain.PaymentPending,
		Status:           domain.StatusUpcoming,
	}

	// 8. Сериализуемая транзакция: проверка занятости слота и вставка
	// в одной границе, чтобы два конкурирующих запроса не прошли проверку
	// до вставки друг друга
	var created *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		_, err := uc.bookingRepo.FindPaidBySlot(txCtx, req.Date, req.TimeSlot)
		if err == nil {
			return ErrSlotTaken
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Частичный уникальный индекс — второй барьер той же гонки
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot %s %q already taken", req.Date.Format(domain.DateFormat), req.TimeSlot)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d created, amount=%.2f %s (discount=%d%%)",
		created.ID, created.Amount, created.Currency, created.DiscountPercent)

	// 9. Создаем платёжную сессию
	resp, err := uc.initiatePayment(ctx, created)
	if err != nil {
		return nil, err
	}
	resp.PromoApplied = promoApplied

	return resp, nil
}

// initiatePayment создает заказ в платёжном шлюзе для бронирования
// При ошибке шлюза бронирование остаётся pending: слот оно не держит,
// а повторная попытка оплаты переиспользует ту же запись
func (uc *UseCase) initiatePayment(ctx context.Context, booking *domain.Booking) (*Response, error) {
	order, err := uc.paymentClient.CreateOrder(ctx, booking.ID, booking.Amount, booking.Currency, paymentgateway.Customer{
		Name:  booking.Name,
		Email: booking.Email,
		Phone: booking.Phone,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: payment initiation failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: booking id=%d: %v", ErrPaymentInit, booking.ID, err)
	}

	if err := uc.bookingRepo.SetPaymentOrder(ctx, booking.ID, order.ID); err != nil {
		// Заказ уже создан, клиент получает его в ответе; потеря order_id
		// в строке не мешает подтверждению по явному идентификатору
		uc.logger.Warn("CreateBooking: failed to store order id=%s for booking id=%d: %v", order.ID, booking.ID, err)
	}

	return &Response{
		BookingID:       booking.ID,
		ScheduledDate:   booking.ScheduledDate,
		TimeSlot:        booking.TimeSlot,
		BaseAmount:      booking.Amount + booking.DiscountAmount,
		DiscountPercent: booking.DiscountPercent,
		DiscountAmount:  booking.DiscountAmount,
		FinalAmount:     booking.Amount,
		Currency:        booking.Currency,
		PromoApplied:    booking.PromoCode != nil,
		PaymentStatus:   string(booking.PaymentStatus),
		OrderID:         order.ID,
		SessionToken:    order.SessionToken,
	}, nil
}
