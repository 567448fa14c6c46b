package manage_availability

import (
	"context"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateTemplate(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error)
	ListTemplates(ctx context.Context) (*models.TemplateListResponse, error)
	SetTemplateActive(ctx context.Context, id int64, active bool) error
	DeleteTemplate(ctx context.Context, id int64) error
	CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error)
	ListBlockedDates(ctx context.Context, from time.Time) (*models.BlockedDateListResponse, error)
	DeleteBlockedDate(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
