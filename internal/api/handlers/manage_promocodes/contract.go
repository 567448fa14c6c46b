package manage_promocodes

import (
	"context"

	"github.com/m04kA/ACS-ConsultationService/internal/service/promocodes/models"
)

type PromoService interface {
	Create(ctx context.Context, req *models.CreatePromoRequest) (*models.PromoResponse, error)
	List(ctx context.Context) (*models.PromoListResponse, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
