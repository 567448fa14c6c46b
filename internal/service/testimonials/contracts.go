package testimonials

import (
	"context"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// TestimonialRepository интерфейс репозитория отзывов
type TestimonialRepository interface {
	Create(ctx context.Context, t *domain.Testimonial) (*domain.Testimonial, error)
	List(ctx context.Context, approvedOnly bool) ([]*domain.Testimonial, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
