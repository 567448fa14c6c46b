package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// UseCase use case получения доступных слотов на дату
//
// Читающий путь: активные шаблоны дня недели минус занятые слоты.
// Занятыми считаются только оплаченные бронирования — pending-записи
// слот не держат.
type UseCase struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// Полностью заблокированная дата не предлагает слотов независимо от шаблонов
	blocked, err := uc.availabilityRepo.IsDateBlocked(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check blocked date: %v", err)
		return nil, fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
	}
	if blocked {
		uc.logger.Info("GetAvailableSlots: date %s is blocked", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, Blocked: true, Slots: []string{}, TakenSlots: []string{}}, nil
	}

	templates, err := uc.availabilityRepo.ListActiveByWeekday(ctx, int(req.Date.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get templates: %v", err)
		return nil, fmt.Errorf("%w: failed to get templates: %v", ErrInternal, err)
	}

	taken, err := uc.bookingRepo.ListTakenSlots(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get taken slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get taken slots: %v", ErrInternal, err)
	}

	takenForDate := takenSlotsForDate(taken, req.Date)

	slots := make([]string, 0, len(templates))
	takenOut := make([]string, 0)
	for _, tpl := range templates {
		if takenForDate[tpl.TimeSlot] {
			takenOut = append(takenOut, tpl.TimeSlot)
			continue
		}
		slots = append(slots, tpl.TimeSlot)
	}

	uc.logger.Info("GetAvailableSlots: date=%s, offered=%d, taken=%d",
		req.Date.Format(domain.DateFormat), len(slots), len(takenOut))

	return &Response{
		Date:       req.Date,
		Slots:      slots,
		TakenSlots: takenOut,
	}, nil
}

// takenSlotsForDate собирает множество занятых меток на указанную дату
func takenSlotsForDate(taken []domain.TakenSlot, date time.Time) map[string]bool {
	result := make(map[string]bool)
	for _, slot := range taken {
		if isSameDay(slot.Date, date) {
			result[slot.TimeSlot] = true
		}
	}
	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
