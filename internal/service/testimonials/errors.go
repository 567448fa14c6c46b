package testimonials

import "errors"

var (
	// ErrInvalidInput - некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrTestimonialNotFound - отзыв не найден
	ErrTestimonialNotFound = errors.New("testimonial not found")
	// ErrInternal - внутренняя ошибка сервиса
	ErrInternal = errors.New("internal service error")
)
