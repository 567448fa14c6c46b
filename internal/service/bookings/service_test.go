package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/ACS-ConsultationService/internal/service/bookings/models"
	"github.com/m04kA/ACS-ConsultationService/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	result := *b
	return &result, nil
}

func (r *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.PaymentStatus != nil && b.PaymentStatus != *filter.PaymentStatus {
			continue
		}
		result := *b
		out = append(out, &result)
	}
	return out, nil
}

func (r *fakeBookingRepo) ListTakenSlots(_ context.Context, _ time.Time) ([]domain.TakenSlot, error) {
	out := make([]domain.TakenSlot, 0)
	for _, b := range r.bookings {
		if b.HoldsSlot() {
			out = append(out, domain.TakenSlot{Date: b.ScheduledDate, TimeSlot: b.TimeSlot})
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) UpdateOperatorFields(_ context.Context, id int64, notes, meetingLink *string) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if notes != nil {
		b.Notes = notes
	}
	if meetingLink != nil {
		b.MeetingLink = meetingLink
	}
	return nil
}

func (r *fakeBookingRepo) Stats(_ context.Context, _, _ time.Time) (*domain.BookingStats, error) {
	stats := &domain.BookingStats{}
	for _, b := range r.bookings {
		stats.Total++
		if b.IsPaid() {
			stats.Paid++
			stats.PaidRevenue += b.Amount
		}
		switch b.Status {
		case domain.StatusUpcoming:
			stats.Upcoming++
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func paidUpcoming(id int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		ScheduledDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:      "10:00 AM - 11:00 AM",
		Amount:        3500,
		Currency:      domain.DefaultCurrency,
		PaymentStatus: domain.PaymentPaid,
		Status:        domain.StatusUpcoming,
	}
}

func TestUpdate_CompletesUpcomingBooking(t *testing.T) {
	repo := newFakeBookingRepo(paidUpcoming(1))
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		Status:      ptr.Ptr("completed"),
		Notes:       ptr.Ptr("Разбор отправлен клиенту"),
		MeetingLink: ptr.Ptr("https://meet.example.com/abc"),
	})

	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "Разбор отправлен клиенту", *resp.Notes)
	assert.Equal(t, domain.StatusCompleted, repo.bookings[1].Status)
}

func TestUpdate_RejectsTransitionFromTerminalStatus(t *testing.T) {
	booking := paidUpcoming(1)
	booking.Status = domain.StatusCancelled
	svc := NewService(newFakeBookingRepo(booking), noopLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		Status: ptr.Ptr("completed"),
	})

	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdate_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(newFakeBookingRepo(paidUpcoming(1)), noopLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		Status: ptr.Ptr("archived"),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), noopLogger{})

	_, err := svc.Update(context.Background(), 42, &models.UpdateBookingRequest{
		Status: ptr.Ptr("completed"),
	})

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListTakenSlots_OnlyPaidHoldSlots(t *testing.T) {
	pending := paidUpcoming(2)
	pending.PaymentStatus = domain.PaymentPending
	pending.TimeSlot = "2:00 PM - 3:00 PM"
	repo := newFakeBookingRepo(paidUpcoming(1), pending)
	svc := NewService(repo, noopLogger{})

	taken, err := svc.ListTakenSlots(context.Background(), time.Time{})

	require.NoError(t, err)
	require.Len(t, taken, 1)
	assert.Equal(t, "10:00 AM - 11:00 AM", taken[0].TimeSlot)
}

func TestStats_InvalidPeriod(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), noopLogger{})

	from := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Stats(context.Background(), &models.StatsRequest{From: from, To: to})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestStats_AggregatesPaidRevenue(t *testing.T) {
	second := paidUpcoming(2)
	second.Status = domain.StatusCompleted
	pending := paidUpcoming(3)
	pending.PaymentStatus = domain.PaymentPending

	svc := NewService(newFakeBookingRepo(paidUpcoming(1), second, pending), noopLogger{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	stats, err := svc.Stats(context.Background(), &models.StatsRequest{From: from, To: to})

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Paid)
	assert.Equal(t, 7000.0, stats.PaidRevenue)
}
