package promocodes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	promoRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/promo"
	"github.com/m04kA/ACS-ConsultationService/internal/service/promocodes/models"
)

// Причины отказа в проверке промокода без применения
const (
	reasonNotFound  = "not_found"
	reasonInactive  = "inactive"
	reasonExpired   = "expired"
	reasonExhausted = "exhausted"
)

// Service сервис управления промокодами
//
// Применение промокода (инкремент счётчика) здесь не живёт: оно выполняется
// атомарным запросом репозитория из оркестратора бронирования
type Service struct {
	promoRepo PromoRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса промокодов
func NewService(promoRepo PromoRepository, logger Logger) *Service {
	return &Service{
		promoRepo: promoRepo,
		logger:    logger,
	}
}

// Create создает новый промокод
func (s *Service) Create(ctx context.Context, req *models.CreatePromoRequest) (*models.PromoResponse, error) {
	code := domain.NormalizeCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if req.DiscountPercent < 1 || req.DiscountPercent > 100 {
		return nil, fmt.Errorf("%w: discount_percent must be in range 1-100", ErrInvalidInput)
	}
	if req.MaxUses < 1 {
		return nil, fmt.Errorf("%w: max_uses must be at least 1", ErrInvalidInput)
	}

	promo := &domain.PromoCode{
		Code:            code,
		DiscountPercent: req.DiscountPercent,
		MaxUses:         req.MaxUses,
		Active:          true,
	}
	if req.ExpiresAt != nil {
		expiry, err := time.Parse(domain.DateFormat, *req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("%w: expires_at must be in format %s", ErrInvalidInput, domain.DateFormat)
		}
		promo.ExpiresAt = &expiry
	}

	created, err := s.promoRepo.Create(ctx, promo)
	if err != nil {
		if errors.Is(err, promoRepo.ErrCodeExists) {
			s.logger.Warn("Create: promo code %s already exists", code)
			return nil, ErrCodeExists
		}
		s.logger.Error("Create: repository error for code %s: %v", code, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created promo code %s id=%d discount=%d%% max_uses=%d",
		created.Code, created.ID, created.DiscountPercent, created.MaxUses)
	return models.FromDomainPromo(created), nil
}

// List возвращает все промокоды с текущими счётчиками применений
func (s *Service) List(ctx context.Context) (*models.PromoListResponse, error) {
	promos, err := s.promoRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPromoList(promos), nil
}

// SetActive включает или выключает промокод
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.promoRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, promoRepo.ErrPromoNotFound) {
			return ErrPromoNotFound
		}
		s.logger.Error("SetActive: repository error for promo id=%d: %v", id, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("SetActive: promo id=%d active=%t", id, active)
	return nil
}

// Delete удаляет промокод
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.promoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, promoRepo.ErrPromoNotFound) {
			return ErrPromoNotFound
		}
		s.logger.Error("Delete: repository error for promo id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("Delete: deleted promo id=%d", id)
	return nil
}

// Validate проверяет применимость промокода, не расходуя лимит
//
// Результат носит информационный характер: реальная проверка выполняется
// ещё раз атомарно в момент создания бронирования
func (s *Service) Validate(ctx context.Context, code string) (*models.ValidatePromoResponse, error) {
	normalized := domain.NormalizeCode(code)
	if normalized == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	promo, err := s.promoRepo.GetByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, promoRepo.ErrPromoNotFound) {
			return &models.ValidatePromoResponse{Code: normalized, Valid: false, Reason: reasonNotFound}, nil
		}
		s.logger.Error("Validate: repository error for code %s: %v", normalized, err)
		return nil, fmt.Errorf("%w: Validate - repository error: %v", ErrInternal, err)
	}

	now := time.Now()
	resp := &models.ValidatePromoResponse{Code: promo.Code}
	switch {
	case !promo.Active:
		resp.Reason = reasonInactive
	case promo.IsExpired(now):
		resp.Reason = reasonExpired
	case promo.IsExhausted():
		resp.Reason = reasonExhausted
	default:
		resp.Valid = true
		resp.DiscountPercent = promo.DiscountPercent
	}
	return resp, nil
}
