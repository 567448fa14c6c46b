package availability

import (
	"context"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	CreateTemplate(ctx context.Context, tpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error)
	ListTemplates(ctx context.Context) ([]*domain.AvailabilityTemplate, error)
	SetTemplateActive(ctx context.Context, id int64, active bool) error
	DeleteTemplate(ctx context.Context, id int64) error
	CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error)
	ListBlockedDates(ctx context.Context, from time.Time) ([]*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
