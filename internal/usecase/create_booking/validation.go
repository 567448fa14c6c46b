package create_booking

import (
	"fmt"
	"regexp"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

var (
	// emailRegexp синтаксическая проверка email
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// phoneRegexp индийский номер: 10 цифр, начинается с 6-9, опциональный префикс +91
	phoneRegexp = regexp.MustCompile(`^(\+91)?[6-9][0-9]{9}$`)

	// timeOfBirthRegexp время рождения в формате HH:MM
	timeOfBirthRegexp = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// validGenders допустимые значения поля gender
var validGenders = map[string]bool{
	"male":   true,
	"female": true,
	"other":  true,
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !domain.IsValidConsultationType(req.ConsultationType) {
		return fmt.Errorf("%w: unknown consultation type %q", ErrInvalidInput, req.ConsultationType)
	}

	if !domain.IsAllowedDuration(req.DurationMinutes) {
		return fmt.Errorf("%w: duration %d is not allowed", ErrInvalidInput, req.DurationMinutes)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.TimeSlot == "" || len(req.TimeSlot) > domain.MaxSlotLabelLength {
		return fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}

	if req.Name == "" || len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if req.DateOfBirth.IsZero() {
		return fmt.Errorf("%w: dateOfBirth is required", ErrInvalidInput)
	}

	if !timeOfBirthRegexp.MatchString(req.TimeOfBirth) {
		return fmt.Errorf("%w: timeOfBirth must be HH:MM", ErrInvalidInput)
	}

	if req.PlaceOfBirth == "" {
		return fmt.Errorf("%w: placeOfBirth is required", ErrInvalidInput)
	}

	if !validGenders[req.Gender] {
		return fmt.Errorf("%w: invalid gender", ErrInvalidInput)
	}

	if !emailRegexp.MatchString(req.Email) {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	if !phoneRegexp.MatchString(req.Phone) {
		return fmt.Errorf("%w: invalid phone number", ErrInvalidInput)
	}

	if len(req.Concern) < domain.MinConcernLength {
		return fmt.Errorf("%w: concern must be at least %d characters", ErrInvalidInput, domain.MinConcernLength)
	}
	if len(req.Concern) > domain.MaxConcernLength {
		return fmt.Errorf("%w: concern is too long", ErrInvalidInput)
	}

	if req.BaseAmount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(date, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}
	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// slotOffered проверяет, что метка слота есть среди активных шаблонов дня
// Метки сравниваются байт-в-байт
func slotOffered(templates []*domain.AvailabilityTemplate, timeSlot string) bool {
	for _, tpl := range templates {
		if tpl.TimeSlot == timeSlot {
			return true
		}
	}
	return false
}
