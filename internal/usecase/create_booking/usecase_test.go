package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/ACS-ConsultationService/internal/integrations/paymentgateway"
)

const testSlot = "10:00 AM - 11:00 AM"

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC) // вторник

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

// fakeBookingRepo потокобезопасное in-memory хранилище бронирований
// Воспроизводит контракт репозитория, включая поведение частичного
// уникального индекса по оплаченным слотам
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.PaymentStatus == domain.PaymentPaid {
		for _, existing := range r.bookings {
			if existing.PaymentStatus == domain.PaymentPaid &&
				existing.ScheduledDate.Equal(b.ScheduledDate) && existing.TimeSlot == b.TimeSlot {
				return nil, bookingRepo.ErrSlotTaken
			}
		}
	}

	r.nextID++
	stored := *b
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.bookings[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *fakeBookingRepo) FindPaidBySlot(_ context.Context, date time.Time, timeSlot string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.PaymentStatus == domain.PaymentPaid && b.ScheduledDate.Equal(date) && b.TimeSlot == timeSlot {
			result := *b
			return &result, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) FindPendingBySlotAndEmail(_ context.Context, date time.Time, timeSlot, email string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.PaymentStatus == domain.PaymentPending && b.ScheduledDate.Equal(date) &&
			b.TimeSlot == timeSlot && b.Email == email {
			result := *b
			return &result, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) SetPaymentOrder(_ context.Context, id int64, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentOrderID = &orderID
	return nil
}

func (r *fakeBookingRepo) markPaid(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[id].PaymentStatus = domain.PaymentPaid
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type fakeAvailabilityRepo struct {
	templates map[int][]string
	blocked   map[string]bool
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{
		templates: map[int][]string{
			int(testDate.Weekday()): {testSlot, "2:00 PM - 3:00 PM"},
		},
		blocked: make(map[string]bool),
	}
}

func (r *fakeAvailabilityRepo) ListActiveByWeekday(_ context.Context, weekday int) ([]*domain.AvailabilityTemplate, error) {
	out := make([]*domain.AvailabilityTemplate, 0, len(r.templates[weekday]))
	for i, slot := range r.templates[weekday] {
		out = append(out, &domain.AvailabilityTemplate{
			ID:       int64(i + 1),
			Weekday:  weekday,
			TimeSlot: slot,
			Active:   true,
		})
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) IsDateBlocked(_ context.Context, date time.Time) (bool, error) {
	return r.blocked[date.Format(domain.DateFormat)], nil
}

// fakePromoRepo атомарный счётчик применений под мьютексом,
// как условный UPDATE в реальном хранилище
type fakePromoRepo struct {
	mu       sync.Mutex
	code     string
	discount int
	maxUses  int
	used     int
	active   bool
}

func (r *fakePromoRepo) TryRedeem(_ context.Context, code string, _ time.Time) (*domain.RedemptionResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active || domain.NormalizeCode(code) != r.code || r.used >= r.maxUses {
		return &domain.RedemptionResult{Applied: false}, nil
	}
	r.used++
	return &domain.RedemptionResult{Applied: true, DiscountPercent: r.discount}, nil
}

type fakePaymentClient struct {
	mu     sync.Mutex
	orders int
	fail   bool
}

func (c *fakePaymentClient) CreateOrder(_ context.Context, bookingID int64, amount float64, currency string, _ paymentgateway.Customer) (*paymentgateway.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fail {
		return nil, paymentgateway.ErrGatewayUnavailable
	}
	c.orders++
	return &paymentgateway.Order{
		ID:           fmt.Sprintf("order_%d_%d", bookingID, c.orders),
		Amount:       int64(amount * 100),
		Currency:     currency,
		Status:       "created",
		SessionToken: fmt.Sprintf("session_%d", c.orders),
	}, nil
}

// fakeTxManager сериализует конкурентные транзакции глобальным мьютексом,
// моделируя изоляцию SERIALIZABLE
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type testEnv struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	avail    *fakeAvailabilityRepo
	promo    *fakePromoRepo
	payments *fakePaymentClient
}

func newTestEnv() *testEnv {
	bookings := newFakeBookingRepo()
	avail := newFakeAvailabilityRepo()
	promo := &fakePromoRepo{code: "TEST50", discount: 50, maxUses: 100, active: true}
	payments := &fakePaymentClient{}

	uc := NewUseCase(bookings, avail, promo, payments, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}

	return &testEnv{uc: uc, bookings: bookings, avail: avail, promo: promo, payments: payments}
}

func validRequest() *Request {
	return &Request{
		ConsultationType: domain.ConsultationNormal,
		WithReport:       false,
		DurationMinutes:  60,
		Date:             testDate,
		TimeSlot:         testSlot,
		Name:             "Priya Sharma",
		DateOfBirth:      time.Date(1992, 4, 21, 0, 0, 0, 0, time.UTC),
		TimeOfBirth:      "14:30",
		PlaceOfBirth:     "Jaipur",
		Gender:           "female",
		Email:            "priya@example.com",
		Phone:            "+919876543210",
		Concern:          "Вопросы карьеры и смены профессии",
		BaseAmount:       7000,
	}
}

func TestExecute_HappyPathWithoutPromo(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, 7000.0, resp.BaseAmount)
	assert.Equal(t, 7000.0, resp.FinalAmount)
	assert.Equal(t, 0, resp.DiscountPercent)
	assert.False(t, resp.PromoApplied)
	assert.Equal(t, domain.DefaultCurrency, resp.Currency)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.NotEmpty(t, resp.OrderID)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestExecute_PromoHalvesPrice(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	code := "TEST50"
	req.PromoCode = &code

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.PromoApplied)
	assert.Equal(t, 50, resp.DiscountPercent)
	assert.Equal(t, 3500.0, resp.DiscountAmount)
	assert.Equal(t, 3500.0, resp.FinalAmount)
	assert.Equal(t, 7000.0, resp.BaseAmount)
}

func TestExecute_PromoCaseInsensitive(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	code := "  test50 "
	req.PromoCode = &code

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.PromoApplied)
	assert.Equal(t, 3500.0, resp.FinalAmount)
}

func TestExecute_ExhaustedPromoFallsBackToFullPrice(t *testing.T) {
	env := newTestEnv()
	env.promo.maxUses = 0

	req := validRequest()
	code := "TEST50"
	req.PromoCode = &code

	resp, err := env.uc.Execute(context.Background(), req)

	// Отказ промокода не валит бронирование, цена полная
	require.NoError(t, err)
	assert.False(t, resp.PromoApplied)
	assert.Equal(t, 0, resp.DiscountPercent)
	assert.Equal(t, 7000.0, resp.FinalAmount)
}

func TestExecute_FullDiscountFloorsAtMinCharge(t *testing.T) {
	env := newTestEnv()
	env.promo.discount = 100

	req := validRequest()
	req.BaseAmount = 100
	code := "TEST50"
	req.PromoCode = &code

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.PromoApplied)
	assert.Equal(t, domain.MinChargeAmount, resp.FinalAmount)
}

func TestExecute_PromoQuotaUnderConcurrency(t *testing.T) {
	env := newTestEnv()
	env.promo.maxUses = 5

	const attempts = 20
	var wg sync.WaitGroup
	applied := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			req := validRequest()
			req.TimeSlot = testSlot
			req.Email = fmt.Sprintf("client%d@example.com", n)
			code := "TEST50"
			req.PromoCode = &code

			resp, err := env.uc.Execute(context.Background(), req)
			if err == nil {
				applied <- resp.PromoApplied
			}
		}(i)
	}
	wg.Wait()
	close(applied)

	appliedCount := 0
	total := 0
	for ok := range applied {
		total++
		if ok {
			appliedCount++
		}
	}

	// Ровно maxUses применений, остальные по полной цене
	assert.Equal(t, attempts, total)
	assert.Equal(t, 5, appliedCount)
	assert.Equal(t, 5, env.promo.used)
}

func TestExecute_SlotTakenByPaidBooking(t *testing.T) {
	env := newTestEnv()

	first, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	env.bookings.markPaid(first.BookingID)

	req := validRequest()
	req.Email = "another@example.com"

	_, err = env.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ConcurrentCreatesAgainstPaidSlot(t *testing.T) {
	env := newTestEnv()

	first, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	env.bookings.markPaid(first.BookingID)

	const attempts = 10
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			req := validRequest()
			req.Email = fmt.Sprintf("rival%d@example.com", n)
			_, err := env.uc.Execute(context.Background(), req)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.ErrorIs(t, err, ErrSlotTaken)
	}
	// Оплаченное бронирование осталось единственным на слоте
	assert.Equal(t, 1, env.bookings.count())
}

func TestExecute_RetryReusesPendingBooking(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	code := "TEST50"
	req.PromoCode = &code

	first, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Повтор того же клиента на тот же слот: та же запись, новый заказ,
	// промокод второй раз не списывается
	second, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.BookingID, second.BookingID)
	assert.Equal(t, first.FinalAmount, second.FinalAmount)
	assert.Equal(t, 1, env.bookings.count())
	assert.Equal(t, 1, env.promo.used)
}

func TestExecute_PaymentFailureLeavesPendingBooking(t *testing.T) {
	env := newTestEnv()
	env.payments.fail = true

	_, err := env.uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrPaymentInit)
	// Бронирование создано и ждёт повторной попытки оплаты
	assert.Equal(t, 1, env.bookings.count())
}

func TestExecute_DiscountSnapshotSurvivesPromoChange(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	code := "TEST50"
	req.PromoCode = &code

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 3500.0, resp.FinalAmount)

	// Меняем промокод после создания: снимок скидки в бронировании не трогаем
	env.promo.discount = 10

	env.bookings.mu.Lock()
	stored := env.bookings.bookings[resp.BookingID]
	env.bookings.mu.Unlock()

	assert.Equal(t, 50, stored.DiscountPercent)
	assert.Equal(t, 3500.0, stored.DiscountAmount)
	assert.Equal(t, 3500.0, stored.Amount)
}

func TestExecute_DateBlocked(t *testing.T) {
	env := newTestEnv()
	env.avail.blocked[testDate.Format(domain.DateFormat)] = true

	_, err := env.uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrDateBlocked)
}

func TestExecute_SlotNotOffered(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.TimeSlot = "11:00 PM - 11:59 PM"

	_, err := env.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrSlotNotOffered)
}

func TestExecute_DateInPast(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Date = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"unknown consultation type", func(r *Request) { r.ConsultationType = "express" }},
		{"disallowed duration", func(r *Request) { r.DurationMinutes = 90 }},
		{"empty slot", func(r *Request) { r.TimeSlot = "" }},
		{"empty name", func(r *Request) { r.Name = "" }},
		{"bad time of birth", func(r *Request) { r.TimeOfBirth = "25:99" }},
		{"empty place of birth", func(r *Request) { r.PlaceOfBirth = "" }},
		{"bad gender", func(r *Request) { r.Gender = "unknown" }},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }},
		{"bad phone", func(r *Request) { r.Phone = "12345" }},
		{"phone starts below 6", func(r *Request) { r.Phone = "+915876543210" }},
		{"short concern", func(r *Request) { r.Concern = "short" }},
		{"zero amount", func(r *Request) { r.BaseAmount = 0 }},
		{"negative amount", func(r *Request) { r.BaseAmount = -100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()

			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_PhoneWithoutCountryCode(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Phone = "9876543210"

	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}
