package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC) // вторник

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type fakeAvailabilityRepo struct {
	templates map[int][]string
	blocked   map[string]bool
}

func (r *fakeAvailabilityRepo) ListActiveByWeekday(_ context.Context, weekday int) ([]*domain.AvailabilityTemplate, error) {
	out := make([]*domain.AvailabilityTemplate, 0)
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

type fakeBookingRepo struct {
	taken []domain.TakenSlot
}

func (r *fakeBookingRepo) ListTakenSlots(_ context.Context, _ time.Time) ([]domain.TakenSlot, error) {
	return r.taken, nil
}

func newUseCase(avail *fakeAvailabilityRepo, bookings *fakeBookingRepo) *UseCase {
	uc := NewUseCase(avail, bookings, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_SplitsOfferedAndTaken(t *testing.T) {
	avail := &fakeAvailabilityRepo{
		templates: map[int][]string{
			int(testDate.Weekday()): {"10:00 AM - 11:00 AM", "2:00 PM - 3:00 PM", "5:00 PM - 6:00 PM"},
		},
		blocked: map[string]bool{},
	}
	bookings := &fakeBookingRepo{
		taken: []domain.TakenSlot{
			{Date: testDate, TimeSlot: "2:00 PM - 3:00 PM"},
			// Занятость другого дня не влияет на выдачу
			{Date: testDate.AddDate(0, 0, 1), TimeSlot: "10:00 AM - 11:00 AM"},
		},
	}

	resp, err := newUseCase(avail, bookings).Execute(context.Background(), &Request{Date: testDate})

	require.NoError(t, err)
	assert.False(t, resp.Blocked)
	assert.Equal(t, []string{"10:00 AM - 11:00 AM", "5:00 PM - 6:00 PM"}, resp.Slots)
	assert.Equal(t, []string{"2:00 PM - 3:00 PM"}, resp.TakenSlots)
}

func TestExecute_BlockedDateReturnsNoSlots(t *testing.T) {
	avail := &fakeAvailabilityRepo{
		templates: map[int][]string{
			int(testDate.Weekday()): {"10:00 AM - 11:00 AM"},
		},
		blocked: map[string]bool{testDate.Format(domain.DateFormat): true},
	}

	resp, err := newUseCase(avail, &fakeBookingRepo{}).Execute(context.Background(), &Request{Date: testDate})

	require.NoError(t, err)
	assert.True(t, resp.Blocked)
	assert.Empty(t, resp.Slots)
	assert.Empty(t, resp.TakenSlots)
}

func TestExecute_NoTemplatesForWeekday(t *testing.T) {
	avail := &fakeAvailabilityRepo{
		templates: map[int][]string{},
		blocked:   map[string]bool{},
	}

	resp, err := newUseCase(avail, &fakeBookingRepo{}).Execute(context.Background(), &Request{Date: testDate})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DateInPast(t *testing.T) {
	avail := &fakeAvailabilityRepo{templates: map[int][]string{}, blocked: map[string]bool{}}

	_, err := newUseCase(avail, &fakeBookingRepo{}).Execute(context.Background(), &Request{
		Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})

	require.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	avail := &fakeAvailabilityRepo{
		templates: map[int][]string{int(today.Weekday()): {"10:00 AM - 11:00 AM"}},
		blocked:   map[string]bool{},
	}

	resp, err := newUseCase(avail, &fakeBookingRepo{}).Execute(context.Background(), &Request{Date: today})

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM - 11:00 AM"}, resp.Slots)
}

func TestExecute_MissingDate(t *testing.T) {
	avail := &fakeAvailabilityRepo{templates: map[int][]string{}, blocked: map[string]bool{}}

	_, err := newUseCase(avail, &fakeBookingRepo{}).Execute(context.Background(), &Request{})

	require.ErrorIs(t, err, ErrInvalidInput)
}
