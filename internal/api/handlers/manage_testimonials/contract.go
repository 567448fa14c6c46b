package manage_testimonials

import (
	"context"

	"github.com/m04kA/ACS-ConsultationService/internal/service/testimonials/models"
)

type TestimonialService interface {
	Create(ctx context.Context, req *models.CreateTestimonialRequest) (*models.TestimonialResponse, error)
	List(ctx context.Context, approvedOnly bool) (*models.TestimonialListResponse, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
