package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "TEST50", NormalizeCode("test50"))
	assert.Equal(t, "TEST50", NormalizeCode("  Test50  "))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestPromoCode_IsExpired(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)

	noExpiry := &PromoCode{}
	assert.False(t, noExpiry.IsExpired(now))

	// Промокод действует весь день истечения включительно
	today := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	expiresToday := &PromoCode{ExpiresAt: &today}
	assert.False(t, expiresToday.IsExpired(now))

	yesterday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	expired := &PromoCode{ExpiresAt: &yesterday}
	assert.True(t, expired.IsExpired(now))
}

func TestPromoCode_CanRedeem(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	active := &PromoCode{Active: true, MaxUses: 5, UsedCount: 4}
	assert.True(t, active.CanRedeem(now))

	exhausted := &PromoCode{Active: true, MaxUses: 5, UsedCount: 5}
	assert.False(t, exhausted.CanRedeem(now))

	inactive := &PromoCode{Active: false, MaxUses: 5}
	assert.False(t, inactive.CanRedeem(now))

	yesterday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	expired := &PromoCode{Active: true, MaxUses: 5, ExpiresAt: &yesterday}
	assert.False(t, expired.CanRedeem(now))
}
