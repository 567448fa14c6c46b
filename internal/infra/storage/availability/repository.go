package availability

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

// Repository репозиторий шаблонов доступности и заблокированных дат
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateTemplate создает шаблон доступности
// Дубликат пары (weekday, time_slot) маппится в ErrTemplateExists
func (r *Repository) CreateTemplate(ctx context.Context, tpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_templates").
		Columns("weekday", "time_slot", "active").
		Values(tpl.Weekday, tpl.TimeSlot, tpl.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateTemplate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tpl.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTemplateExists
		}
		return nil, fmt.Errorf("%w: CreateTemplate - execute insert: %v", ErrExecQuery, err)
	}

	tpl.CreatedAt = createdAt.Time
	tpl.UpdatedAt = updatedAt.Time

	return tpl, nil
}

// ListTemplates получает все шаблоны доступности
func (r *Repository) ListTemplates(ctx context.Context) ([]*domain.AvailabilityTemplate, error) {
	return r.listTemplates(ctx, psqlbuilder.Select(
		"id", "weekday", "time_slot", "active", "created_at", "updated_at",
	).
		From("availability_templates").
		OrderBy("weekday ASC, time_slot ASC"))
}

// ListActiveByWeekday получает активные шаблоны на день недели
func (r *Repository) ListActiveByWeekday(ctx context.Context, weekday int) ([]*domain.AvailabilityTemplate, error) {
	return r.listTemplates(ctx, psqlbuilder.Select(
		"id", "weekday", "time_slot", "active", "created_at", "updated_at",
	).
		From("availability_templates").
		Where(squirrel.Eq{"weekday": weekday, "active": true}).
		OrderBy("time_slot ASC"))
}

// SetTemplateActive включает или отключает шаблон
func (r *Repository) SetTemplateActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_templates").
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetTemplateActive - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetTemplateActive", ErrTemplateNotFound)
}

// DeleteTemplate удаляет шаблон доступности
func (r *Repository) DeleteTemplate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteTemplate - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "DeleteTemplate", ErrTemplateNotFound)
}

// CreateBlockedDate блокирует дату для бронирования
// Повтор даты маппится в ErrDateAlreadyBlocked
func (r *Repository) CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("date", "reason").
		Values(blocked.Date, blocked.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&blocked.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDateAlreadyBlocked
		}
		return nil, fmt.Errorf("%w: CreateBlockedDate - execute insert: %v", ErrExecQuery, err)
	}

	blocked.CreatedAt = createdAt.Time

	return blocked, nil
}

// IsDateBlocked проверяет, заблокирована ли дата
func (r *Repository) IsDateBlocked(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("blocked_dates").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// ListBlockedDates получает заблокированные даты, начиная с указанной
func (r *Repository) ListBlockedDates(ctx context.Context, from time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "reason", "created_at").
		From("blocked_dates").
		Where(squirrel.GtOrEq{"date": from}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var blocked domain.BlockedDate
		var createdAt sql.NullTime

		if err := rows.Scan(&blocked.ID, &blocked.Date, &blocked.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %v", ErrScanRow, err)
		}

		blocked.CreatedAt = createdAt.Time
		dates = append(dates, &blocked)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// DeleteBlockedDate снимает блокировку даты
func (r *Repository) DeleteBlockedDate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "DeleteBlockedDate", ErrBlockedDateNotFound)
}

func (r *Repository) listTemplates(ctx context.Context, selectBuilder squirrel.SelectBuilder) ([]*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listTemplates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listTemplates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.AvailabilityTemplate, 0)
	for rows.Next() {
		var tpl domain.AvailabilityTemplate
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(&tpl.ID, &tpl.Weekday, &tpl.TimeSlot, &tpl.Active, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: listTemplates - scan row: %v", ErrScanRow, err)
		}

		tpl.CreatedAt = createdAt.Time
		tpl.UpdatedAt = updatedAt.Time
		templates = append(templates, &tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string, notFound error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
