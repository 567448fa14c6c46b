package domain

import (
	"strings"
	"time"
)

// PromoCode промокод с потолком числа применений
//
// UsedCount увеличивается только атомарным redeem-запросом хранилища
// и никогда не превышает MaxUses
type PromoCode struct {
	ID              int64
	Code            string // Хранится в верхнем регистре
	DiscountPercent int    // 1-100
	MaxUses         int
	UsedCount       int
	Active          bool
	ExpiresAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NormalizeCode приводит промокод к каноническому виду
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsExpired возвращает true, если срок действия промокода истёк
func (p *PromoCode) IsExpired(now time.Time) bool {
	if p.ExpiresAt == nil {
		return false
	}
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expiry := time.Date(p.ExpiresAt.Year(), p.ExpiresAt.Month(), p.ExpiresAt.Day(), 0, 0, 0, 0, time.UTC)
	return nowDate.After(expiry)
}

// IsExhausted возвращает true, если лимит применений исчерпан
func (p *PromoCode) IsExhausted() bool {
	return p.UsedCount >= p.MaxUses
}

// CanRedeem возвращает true, если промокод можно применить сейчас
func (p *PromoCode) CanRedeem(now time.Time) bool {
	return p.Active && !p.IsExhausted() && !p.IsExpired(now)
}

// RedemptionResult результат попытки применить промокод
// Applied = false — нормальный исход "скидка не применяется", не ошибка
type RedemptionResult struct {
	Applied         bool
	DiscountPercent int
}
