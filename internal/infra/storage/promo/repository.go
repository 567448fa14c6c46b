package promo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	"github.com/m04kA/ACS-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/ACS-ConsultationService/pkg/psqlbuilder"
)

// uniqueViolation SQLSTATE нарушения уникального ограничения
const uniqueViolation = "23505"

var promoColumns = []string{
	"id",
	"code",
	"discount_percent",
	"max_uses",
	"used_count",
	"active",
	"expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с промокодами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория промокодов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый промокод
// Код хранится в верхнем регистре; дубликат кода маппится в ErrCodeExists
func (r *Repository) Create(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("promo_codes").
		Columns(
			"code",
			"discount_percent",
			"max_uses",
			"used_count",
			"active",
			"expires_at",
		).
		Values(
			domain.NormalizeCode(promo.Code),
			promo.DiscountPercent,
			promo.MaxUses,
			0,
			promo.Active,
			promo.ExpiresAt,
		).
		Suffix("RETURNING id, code, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&promo.ID,
		&promo.Code,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCodeExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	promo.UsedCount = 0
	promo.CreatedAt = createdAt.Time
	promo.UpdatedAt = updatedAt.Time

	return promo, nil
}

// GetByCode получает промокод по коду (без учета регистра)
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promoColumns...).
		From("promo_codes").
		Where(squirrel.Eq{"code": domain.NormalizeCode(code)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPromo(executor.QueryRowContext(ctx, query, args...), "GetByCode")
}

// List получает все промокоды
func (r *Repository) List(ctx context.Context) ([]*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promoColumns...).
		From("promo_codes").
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	promos := make([]*domain.PromoCode, 0)
	for rows.Next() {
		var promo domain.PromoCode
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&promo.ID,
			&promo.Code,
			&promo.DiscountPercent,
			&promo.MaxUses,
			&promo.UsedCount,
			&promo.Active,
			&promo.ExpiresAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		promo.CreatedAt = createdAt.Time
		promo.UpdatedAt = updatedAt.Time
		promos = append(promos, &promo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return promos, nil
}

// TryRedeem атомарно применяет одно использование промокода
//
// Проверка и инкремент выполняются одним условным UPDATE: из двух запросов,
// конкурирующих за последнее оставшееся использование, строку обновит ровно
// один — второй получит ноль затронутых строк и Applied = false.
// used_count никогда не превышает max_uses.
//
// Applied = false — нормальный исход "скидка не применяется", не ошибка.
func (r *Repository) TryRedeem(ctx context.Context, code string, now time.Time) (*domain.RedemptionResult, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	query, args, err := psqlbuilder.Update("promo_codes").
		Set("used_count", squirrel.Expr("used_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"code":   domain.NormalizeCode(code),
			"active": true,
		}).
		Where(squirrel.Expr("used_count < max_uses")).
		Where(squirrel.Or{
			squirrel.Eq{"expires_at": nil},
			squirrel.GtOrEq{"expires_at": today},
		}).
		Suffix("RETURNING discount_percent").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TryRedeem - build update query: %v", ErrBuildQuery, err)
	}

	var discountPercent int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&discountPercent)

	if errors.Is(err, sql.ErrNoRows) {
		return &domain.RedemptionResult{Applied: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: TryRedeem - execute update: %v", ErrExecQuery, err)
	}

	return &domain.RedemptionResult{
		Applied:         true,
		DiscountPercent: discountPercent,
	}, nil
}

// SetActive включает или отключает промокод
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promo_codes").
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetActive")
}

// Delete удаляет промокод
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("promo_codes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrPromoNotFound
	}

	return nil
}

func (r *Repository) scanPromo(row *sql.Row, op string) (*domain.PromoCode, error) {
	var promo domain.PromoCode
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&promo.ID,
		&promo.Code,
		&promo.DiscountPercent,
		&promo.MaxUses,
		&promo.UsedCount,
		&promo.Active,
		&promo.ExpiresAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan promo: %v", ErrScanRow, op, err)
	}

	promo.CreatedAt = createdAt.Time
	promo.UpdatedAt = updatedAt.Time

	return &promo, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
