package promocodes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	promoRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/promo"
	"github.com/m04kA/ACS-ConsultationService/internal/service/promocodes/models"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakePromoRepo struct {
	byCode map[string]*domain.PromoCode
	nextID int64
}

func newFakePromoRepo() *fakePromoRepo {
	return &fakePromoRepo{byCode: make(map[string]*domain.PromoCode)}
}

func (r *fakePromoRepo) Create(_ context.Context, promo *domain.PromoCode) (*domain.PromoCode, error) {
	if _, ok := r.byCode[promo.Code]; ok {
		return nil, promoRepo.ErrCodeExists
	}
	r.nextID++
	stored := *promo
	stored.ID = r.nextID
	r.byCode[stored.Code] = &stored
	result := stored
	return &result, nil
}

func (r *fakePromoRepo) GetByCode(_ context.Context, code string) (*domain.PromoCode, error) {
	promo, ok := r.byCode[code]
	if !ok {
		return nil, promoRepo.ErrPromoNotFound
	}
	result := *promo
	return &result, nil
}

func (r *fakePromoRepo) List(_ context.Context) ([]*domain.PromoCode, error) {
	out := make([]*domain.PromoCode, 0, len(r.byCode))
	for _, promo := range r.byCode {
		result := *promo
		out = append(out, &result)
	}
	return out, nil
}

func (r *fakePromoRepo) SetActive(_ context.Context, id int64, active bool) error {
	for _, promo := range r.byCode {
		if promo.ID == id {
			promo.Active = active
			return nil
		}
	}
	return promoRepo.ErrPromoNotFound
}

func (r *fakePromoRepo) Delete(_ context.Context, id int64) error {
	for code, promo := range r.byCode {
		if promo.ID == id {
			delete(r.byCode, code)
			return nil
		}
	}
	return promoRepo.ErrPromoNotFound
}

func TestCreate_NormalizesCode(t *testing.T) {
	repo := newFakePromoRepo()
	svc := NewService(repo, noopLogger{})

	promo, err := svc.Create(context.Background(), &models.CreatePromoRequest{
		Code:            "  test50 ",
		DiscountPercent: 50,
		MaxUses:         10,
	})

	require.NoError(t, err)
	assert.Equal(t, "TEST50", promo.Code)
	assert.True(t, promo.Active)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakePromoRepo(), noopLogger{})

	tests := []struct {
		name string
		req  models.CreatePromoRequest
	}{
		{"empty code", models.CreatePromoRequest{DiscountPercent: 50, MaxUses: 10}},
		{"zero discount", models.CreatePromoRequest{Code: "X", DiscountPercent: 0, MaxUses: 10}},
		{"discount above 100", models.CreatePromoRequest{Code: "X", DiscountPercent: 101, MaxUses: 10}},
		{"zero max uses", models.CreatePromoRequest{Code: "X", DiscountPercent: 50, MaxUses: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo := newFakePromoRepo()
	svc := NewService(repo, noopLogger{})

	req := &models.CreatePromoRequest{Code: "TEST50", DiscountPercent: 50, MaxUses: 10}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrCodeExists)
}

func TestValidate_DoesNotConsumeQuota(t *testing.T) {
	repo := newFakePromoRepo()
	repo.byCode["TEST50"] = &domain.PromoCode{
		ID: 1, Code: "TEST50", DiscountPercent: 50, MaxUses: 10, UsedCount: 3, Active: true,
	}
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Validate(context.Background(), "test50")

	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, 50, resp.DiscountPercent)
	// Проверка не расходует лимит
	assert.Equal(t, 3, repo.byCode["TEST50"].UsedCount)
}

func TestValidate_Reasons(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)

	tests := []struct {
		name   string
		promo  *domain.PromoCode
		reason string
	}{
		{"inactive", &domain.PromoCode{Code: "X", DiscountPercent: 10, MaxUses: 5, Active: false}, "inactive"},
		{"exhausted", &domain.PromoCode{Code: "X", DiscountPercent: 10, MaxUses: 5, UsedCount: 5, Active: true}, "exhausted"},
		{"expired", &domain.PromoCode{Code: "X", DiscountPercent: 10, MaxUses: 5, Active: true, ExpiresAt: &yesterday}, "expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePromoRepo()
			repo.byCode["X"] = tt.promo
			svc := NewService(repo, noopLogger{})

			resp, err := svc.Validate(context.Background(), "X")

			require.NoError(t, err)
			assert.False(t, resp.Valid)
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}
}

func TestValidate_NotFound(t *testing.T) {
	svc := NewService(newFakePromoRepo(), noopLogger{})

	resp, err := svc.Validate(context.Background(), "MISSING")

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, "not_found", resp.Reason)
}
