package promocodes

import (
	"context"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// PromoRepository интерфейс репозитория промокодов
type PromoRepository interface {
	Create(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error)
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	List(ctx context.Context) ([]*domain.PromoCode, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
