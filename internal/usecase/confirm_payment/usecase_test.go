package confirm_payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/ACS-ConsultationService/internal/integrations/notify"
	"github.com/m04kA/ACS-ConsultationService/internal/integrations/paymentgateway"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// fakeBookingRepo in-memory хранилище с условным переходом pending -> paid
// Мьютекс делает MarkPaid атомарным, как условный UPDATE в PostgreSQL
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
	slotRace bool // имитация нарушения частичного уникального индекса
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	result := *b
	return &result, nil
}

func (r *fakeBookingRepo) MarkPaid(_ context.Context, id int64, orderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	if b.PaymentStatus != domain.PaymentPending {
		return false, nil
	}
	if r.slotRace {
		return false, bookingRepo.ErrSlotTaken
	}
	b.PaymentStatus = domain.PaymentPaid
	b.PaymentOrderID = &orderID
	return true, nil
}

type fakeGateway struct {
	status string
	err    error
}

func (g *fakeGateway) GetOrderStatus(_ context.Context, orderID string) (*paymentgateway.OrderStatus, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &paymentgateway.OrderStatus{ID: orderID, Status: g.status}, nil
}

type countingNotifier struct {
	mu    sync.Mutex
	sends []notify.Message
}

func (n *countingNotifier) Send(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sends = append(n.sends, msg)
	return nil
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sends)
}

func pendingBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		ScheduledDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:      "10:00 AM - 11:00 AM",
		Name:          "Priya Sharma",
		Email:         "priya@example.com",
		Phone:         "+919876543210",
		Amount:        3500,
		Currency:      domain.DefaultCurrency,
		PaymentStatus: domain.PaymentPending,
		Status:        domain.StatusUpcoming,
	}
}

func TestExecute_ConfirmsPendingBooking(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	notifier := &countingNotifier{}
	uc := NewUseCase(repo, &fakeGateway{status: "paid"}, notifier, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, OrderID: "order_1"})

	require.NoError(t, err)
	assert.False(t, resp.AlreadyPaid)
	assert.Equal(t, domain.PaymentPaid, repo.bookings[1].PaymentStatus)

	// Уведомление уходит в горутине
	assert.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestExecute_RepeatConfirmationIsNoOp(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	notifier := &countingNotifier{}
	uc := NewUseCase(repo, &fakeGateway{status: "paid"}, notifier, noopLogger{})

	first, err := uc.Execute(context.Background(), &Request{BookingID: 1, OrderID: "order_1"})
	require.NoError(t, err)
	require.False(t, first.AlreadyPaid)

	second, err := uc.Execute(context.Background(), &Request{BookingID: 1, OrderID: "order_1"})
	require.NoError(t, err)
	assert.True(t, second.AlreadyPaid)

	// Уведомление отправлено ровно один раз
	assert.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, notifier.count())
}

func TestExecute_ConcurrentConfirmationsSingleTransition(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	notifier := &countingNotifier{}
	uc := NewUseCase(repo, &fakeGateway{status: "paid"}, notifier, noopLogger{})

	const attempts = 10
	var wg sync.WaitGroup
	transitioned := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, OrderID: "order_1"})
			if err == nil {
				transitioned <- !resp.AlreadyPaid
			}
		}()
	}
	wg.Wait()
	close(transitioned)

	winners := 0
	for won := range transitioned {
		if won {
			winners++
		}
	}

	// Переход совершает ровно один вызов
	assert.Equal(t, 1, winners)
	assert.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestExecute_GatewayNotPaid(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	uc := NewUseCase(repo, &fakeGateway{status: "created"}, &countingNotifier{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, OrderID: "order_1"})

	require.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, domain.PaymentPending, repo.bookings[1].PaymentStatus)
}

func TestExecute_GatewayError(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	uc := NewUseCase(repo, &fakeGateway{err: paymentgateway.ErrGatewayUnavailable}, &countingNotifier{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, OrderID: "order_1"})

	require.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.PaymentPending, repo.bookings[1].PaymentStatus)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := NewUseCase(newFakeBookingRepo(), &fakeGateway{status: "paid"}, &countingNotifier{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, OrderID: "order_1"})

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_SlotRaceLost(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	repo.slotRace = true
	uc := NewUseCase(repo, &fakeGateway{status: "paid"}, &countingNotifier{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, OrderID: "order_1"})

	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(newFakeBookingRepo(), &fakeGateway{status: "paid"}, &countingNotifier{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0, OrderID: "order_1"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, OrderID: ""})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NilNotifierSkipsNotification(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	uc := NewUseCase(repo, &fakeGateway{status: "paid"}, nil, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, OrderID: "order_1"})

	require.NoError(t, err)
	assert.False(t, resp.AlreadyPaid)
}
