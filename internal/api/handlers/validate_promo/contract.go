package validate_promo

import (
	"context"

	"github.com/m04kA/ACS-ConsultationService/internal/service/promocodes/models"
)

type PromoService interface {
	Validate(ctx context.Context, code string) (*models.ValidatePromoResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
