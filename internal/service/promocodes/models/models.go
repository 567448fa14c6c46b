package models

import (
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// CreatePromoRequest запрос на создание промокода
type CreatePromoRequest struct {
	Code            string  `json:"code"`
	DiscountPercent int     `json:"discount_percent"`
	MaxUses         int     `json:"max_uses"`
	ExpiresAt       *string `json:"expires_at,omitempty"`
}

// PromoResponse промокод в ответе API
type PromoResponse struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	MaxUses         int       `json:"max_uses"`
	UsedCount       int       `json:"used_count"`
	Active          bool      `json:"active"`
	ExpiresAt       *string   `json:"expires_at,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PromoListResponse список промокодов
type PromoListResponse struct {
	PromoCodes []PromoResponse `json:"promo_codes"`
}

// ValidatePromoResponse результат проверки промокода без применения
type ValidatePromoResponse struct {
	Code            string `json:"code"`
	Valid           bool   `json:"valid"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// FromDomainPromo конвертирует доменный промокод в ответ API
func FromDomainPromo(promo *domain.PromoCode) *PromoResponse {
	resp := &PromoResponse{
		ID:              promo.ID,
		Code:            promo.Code,
		DiscountPercent: promo.DiscountPercent,
		MaxUses:         promo.MaxUses,
		UsedCount:       promo.UsedCount,
		Active:          promo.Active,
		CreatedAt:       promo.CreatedAt,
		UpdatedAt:       promo.UpdatedAt,
	}
	if promo.ExpiresAt != nil {
		formatted := promo.ExpiresAt.Format(domain.DateFormat)
		resp.ExpiresAt = &formatted
	}
	return resp
}

// FromDomainPromoList конвертирует список доменных промокодов в ответ API
func FromDomainPromoList(promos []*domain.PromoCode) *PromoListResponse {
	out := make([]PromoResponse, 0, len(promos))
	for _, promo := range promos {
		out = append(out, *FromDomainPromo(promo))
	}
	return &PromoListResponse{PromoCodes: out}
}
