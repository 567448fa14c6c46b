package booking

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

// paidSlotIndex имя частичного уникального индекса на оплаченный слот
const paidSlotIndex = "bookings_paid_slot_uniq"

var bookingColumns = []string{
	"id",
	"consultation_type",
	"with_report",
	"duration_minutes",
	"scheduled_date",
	"time_slot",
	"name",
	"date_of_birth",
	"time_of_birth",
	"place_of_birth",
	"gender",
	"email",
	"phone",
	"concern",
	"amount",
	"currency",
	"promo_code",
	"discount_percent",
	"discount_amount",
	"payment_status",
	"payment_order_id",
	"status",
	"notes",
	"meeting_link",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями консультаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Проверка занятости слота выполняется на уровне usecase внутри сериализуемой
// транзакции; частичный уникальный индекс bookings_paid_slot_uniq служит
// вторым барьером — его нарушение маппится в ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"consultation_type",
			"with_report",
			"duration_minutes",
			"scheduled_date",
			"time_slot",
			"name",
			"date_of_birth",
			"time_of_birth",
			"place_of_birth",
			"gender",
			"email",
			"phone",
			"concern",
			"amount",
			"currency",
			"promo_code",
			"discount_percent",
			"discount_amount",
			"payment_status",
			"status",
		).
		Values(
			booking.ConsultationType,
			booking.WithReport,
			booking.DurationMinutes,
			booking.ScheduledDate,
			booking.TimeSlot,
			booking.Name,
			booking.DateOfBirth,
			booking.TimeOfBirth,
			booking.PlaceOfBirth,
			booking.Gender,
			booking.Email,
			booking.Phone,
			booking.Concern,
			booking.Amount,
			booking.Currency,
			booking.PromoCode,
			booking.DiscountPercent,
			booking.DiscountAmount,
			booking.PaymentStatus,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isPaidSlotViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// FindPaidBySlot ищет оплаченное бронирование, удерживающее пару (дата, слот)
// Внутри транзакции добавляет FOR UPDATE, чтобы конкурирующая транзакция
// не прошла проверку до коммита текущей
func (r *Repository) FindPaidBySlot(ctx context.Context, date time.Time, timeSlot string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"scheduled_date": date,
			"time_slot":      timeSlot,
			"payment_status": domain.PaymentPaid,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindPaidBySlot - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "FindPaidBySlot")
}

// FindPendingBySlotAndEmail ищет неоплаченное бронирование того же клиента
// на ту же пару (дата, слот)
// Используется для повторной попытки оплаты: вместо вставки дубликата
// переиспользуется существующая pending-запись
func (r *Repository) FindPendingBySlotAndEmail(ctx context.Context, date time.Time, timeSlot, email string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"scheduled_date": date,
			"time_slot":      timeSlot,
			"email":          email,
			"payment_status": domain.PaymentPending,
		}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindPendingBySlotAndEmail - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "FindPendingBySlotAndEmail")
}

// ListTakenSlots возвращает занятые пары (дата, слот), начиная с указанной даты
// Занятыми считаются только оплаченные бронирования
func (r *Repository) ListTakenSlots(ctx context.Context, from time.Time) ([]domain.TakenSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("scheduled_date", "time_slot").
		From("bookings").
		Where(squirrel.Eq{"payment_status": domain.PaymentPaid}).
		Where(squirrel.GtOrEq{"scheduled_date": from}).
		OrderBy("scheduled_date ASC, time_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTakenSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTakenSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	taken := make([]domain.TakenSlot, 0)
	for rows.Next() {
		var slot domain.TakenSlot
		if err := rows.Scan(&slot.Date, &slot.TimeSlot); err != nil {
			return nil, fmt.Errorf("%w: ListTakenSlots - scan row: %v", ErrScanRow, err)
		}
		taken = append(taken, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTakenSlots - rows error: %v", ErrScanRow, err)
	}

	return taken, nil
}

// MarkPaid переводит бронирование из pending в paid
// Условный UPDATE: возвращает true, только если переход действительно
// произошёл в этом вызове. Повторный вызов для уже оплаченного бронирования
// возвращает false без изменения данных — на этом строится идемпотентность
// обработчика подтверждения оплаты.
func (r *Repository) MarkPaid(ctx context.Context, id int64, orderID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", domain.PaymentPaid).
		Set("payment_order_id", orderID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":             id,
			"payment_status": domain.PaymentPending,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isPaidSlotViolation(err) {
			return false, ErrSlotTaken
		}
		return false, fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// SetPaymentOrder сохраняет идентификатор заказа платёжного шлюза
func (r *Repository) SetPaymentOrder(ctx context.Context, id int64, orderID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_order_id", orderID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentOrder - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetPaymentOrder")
}

// UpdateStatus обновляет жизненный статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// UpdateOperatorFields обновляет заметки и ссылку на встречу
// Передаётся только то, что нужно изменить (nil = не трогать)
func (r *Repository) UpdateOperatorFields(ctx context.Context, id int64, notes, meetingLink *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}
	if meetingLink != nil {
		updateBuilder = updateBuilder.Set("meeting_link", *meetingLink)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateOperatorFields - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateOperatorFields")
}

// ListWithFilter получает бронирования с фильтрацией для админки
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("scheduled_date DESC, time_slot DESC")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"scheduled_date": *filter.EndDate})
	}
	if filter.PaymentStatus != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"payment_status": *filter.PaymentStatus})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Stats возвращает сводку по бронированиям за период
// Выручка считается только по оплаченным бронированиям
func (r *Repository) Stats(ctx context.Context, from, to time.Time) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE payment_status = 'paid')",
		"COUNT(*) FILTER (WHERE status = 'upcoming')",
		"COUNT(*) FILTER (WHERE status = 'completed')",
		"COUNT(*) FILTER (WHERE status = 'cancelled')",
		"COALESCE(SUM(amount) FILTER (WHERE payment_status = 'paid'), 0)",
	).
		From("bookings").
		Where(squirrel.GtOrEq{"scheduled_date": from}).
		Where(squirrel.LtOrEq{"scheduled_date": to}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Paid,
		&stats.Upcoming,
		&stats.Completed,
		&stats.Cancelled,
		&stats.PaidRevenue,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan row: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// execExpectingRow выполняет запрос и возвращает ErrBookingNotFound,
// если не затронута ни одна строка
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку бронирования
func (r *Repository) scanBooking(row *sql.Row, op string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ConsultationType,
		&booking.WithReport,
		&booking.DurationMinutes,
		&booking.ScheduledDate,
		&booking.TimeSlot,
		&booking.Name,
		&booking.DateOfBirth,
		&booking.TimeOfBirth,
		&booking.PlaceOfBirth,
		&booking.Gender,
		&booking.Email,
		&booking.Phone,
		&booking.Concern,
		&booking.Amount,
		&booking.Currency,
		&booking.PromoCode,
		&booking.DiscountPercent,
		&booking.DiscountAmount,
		&booking.PaymentStatus,
		&booking.PaymentOrderID,
		&booking.Status,
		&booking.Notes,
		&booking.MeetingLink,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.ConsultationType,
			&booking.WithReport,
			&booking.DurationMinutes,
			&booking.ScheduledDate,
			&booking.TimeSlot,
			&booking.Name,
			&booking.DateOfBirth,
			&booking.TimeOfBirth,
			&booking.PlaceOfBirth,
			&booking.Gender,
			&booking.Email,
			&booking.Phone,
			&booking.Concern,
			&booking.Amount,
			&booking.Currency,
			&booking.PromoCode,
			&booking.DiscountPercent,
			&booking.DiscountAmount,
			&booking.PaymentStatus,
			&booking.PaymentOrderID,
			&booking.Status,
			&booking.Notes,
			&booking.MeetingLink,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isPaidSlotViolation распознаёт нарушение уникальности оплаченного слота
func isPaidSlotViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation && pqErr.Constraint == paidSlotIndex
	}
	return false
}
