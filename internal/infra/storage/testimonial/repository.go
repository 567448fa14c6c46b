package testimonial

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	"github.com/m04kA/ACS-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/ACS-ConsultationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с отзывами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв (по умолчанию неодобренный)
func (r *Repository) Create(ctx context.Context, t *domain.Testimonial) (*domain.Testimonial, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("testimonials").
		Columns("author", "text", "rating", "approved").
		Values(t.Author, t.Text, t.Rating, t.Approved).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time

	return t, nil
}

// List получает отзывы; approvedOnly = true ограничивает выдачу одобренными
func (r *Repository) List(ctx context.Context, approvedOnly bool) ([]*domain.Testimonial, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "author", "text", "rating", "approved", "created_at").
		From("testimonials").
		OrderBy("created_at DESC")

	if approvedOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"approved": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	testimonials := make([]*domain.Testimonial, 0)
	for rows.Next() {
		var t domain.Testimonial
		var createdAt sql.NullTime

		if err := rows.Scan(&t.ID, &t.Author, &t.Text, &t.Rating, &t.Approved, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time
		testimonials = append(testimonials, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return testimonials, nil
}

// SetApproved одобряет или скрывает отзыв
func (r *Repository) SetApproved(ctx context.Context, id int64, approved bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("testimonials").
		Set("approved", approved).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetApproved - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetApproved")
}

// Delete удаляет отзыв
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("testimonials").
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
		return ErrTestimonialNotFound
	}

	return nil
}
