package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	tableName = "appointments"

	codeUniqueViolation pq.ErrorCode = "23505"

	// startMinutesExpr время начала записи в минутах от полуночи
	startMinutesExpr = "(EXTRACT(EPOCH FROM appointment_time) / 60)::int"
)

var columns = []string{
	"id",
	"store_id",
	"service_id",
	"public_token",
	"customer_name",
	"customer_phone",
	"appointment_date",
	"appointment_time",
	"duration_minutes",
	"status",
	"service_name",
	"price_snapshot",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"reminder_sent_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Проверка вместимости выполняется до вызова, в той же транзакции.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"store_id",
			"service_id",
			"public_token",
			"customer_name",
			"customer_phone",
			"appointment_date",
			"appointment_time",
			"duration_minutes",
			"status",
			"service_name",
			"price_snapshot",
			"notes",
		).
		Values(
			a.StoreID,
			a.ServiceID,
			a.PublicToken,
			a.CustomerName,
			a.CustomerPhone,
			a.Date,
			a.Time,
			a.DurationMinutes,
			a.Status,
			a.ServiceName,
			a.PriceSnapshot,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
			return nil, ErrDuplicateToken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByPublicToken получает запись по публичному токену.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByPublicToken(ctx context.Context, token string) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByPublicToken", squirrel.Eq{"public_token": token})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %w", ErrScanRow, op, err)
	}

	return a, nil
}

// ListActive получает активные записи магазина за период [from, to] включительно,
// отсортированные по дате и времени
func (r *Repository) ListActive(ctx context.Context, storeID int64, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.GtOrEq{"appointment_date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"appointment_date": domain.DateOnly(to)}).
		Where(squirrel.Eq{"status": activeStatuses()}).
		OrderBy("appointment_date ASC", "appointment_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// List получает записи магазина с фильтрацией
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"store_id": filter.StoreID})

	// Фильтрация по периоду
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": domain.DateOnly(*filter.From)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": domain.DateOnly(*filter.To)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := selectBuilder.
		OrderBy("appointment_date ASC", "appointment_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListForReminder получает активные записи на дату, по которым еще не отправлено напоминание
func (r *Repository) ListForReminder(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"appointment_date": domain.DateOnly(date)}).
		Where(squirrel.Eq{"status": activeStatuses()}).
		Where(squirrel.Eq{"reminder_sent_at": nil}).
		OrderBy("store_id ASC", "appointment_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForReminder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForReminder - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// CountAtSlot считает активные записи, занимающие слот.
// exact_start: совпадение даты и времени начала; overlap: пересечение интервалов
// [start, start+duration), соприкасающиеся интервалы не пересекаются.
func (r *Repository) CountAtSlot(ctx context.Context, q domain.SlotQuery) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"store_id": q.StoreID}).
		Where(squirrel.Eq{"appointment_date": domain.DateOnly(q.Date)}).
		Where(squirrel.Eq{"status": activeStatuses()})

	if q.Mode == domain.OccupancyOverlap {
		start := q.Time.Minutes()
		selectBuilder = selectBuilder.
			Where(squirrel.Expr(startMinutesExpr+" < ?", start+q.DurationMinutes)).
			Where(squirrel.Expr(startMinutesExpr+" + duration_minutes > ?", start))
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_time": q.Time})
	}

	if q.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *q.ExcludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountAtSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountAtSlot - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// LockStoreDay берет advisory-блокировку на день магазина до конца транзакции.
// Все резервирования одного дня магазина выполняются последовательно.
func (r *Repository) LockStoreDay(ctx context.Context, storeID int64, date time.Time) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: LockStoreDay", ErrTransaction)
	}

	key := fmt.Sprintf("%s:%d:%s", tableName, storeID, date.Format(domain.DateFormat))
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("%w: LockStoreDay - execute lock: %w", ErrExecQuery, err)
	}

	return nil
}

// UpdateSlot переносит запись на другую дату и время
func (r *Repository) UpdateSlot(ctx context.Context, id int64, date time.Time, at types.TimeString, durationMinutes int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("appointment_date", domain.DateOnly(date)).
		Set("appointment_time", at).
		Set("duration_minutes", durationMinutes).
		Set("reminder_sent_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateSlot", query, args)
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Cancel отменяет запись с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Cancel", query, args)
}

// MarkReminderSent отмечает, что напоминание отправлено
func (r *Repository) MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("reminder_sent_at", sentAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "MarkReminderSent", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func activeStatuses() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime
	var cancelledAt, reminderSentAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.StoreID,
		&a.ServiceID,
		&a.PublicToken,
		&a.CustomerName,
		&a.CustomerPhone,
		&a.Date,
		&a.Time,
		&a.DurationMinutes,
		&a.Status,
		&a.ServiceName,
		&a.PriceSnapshot,
		&a.Notes,
		&a.CancellationReason,
		&cancelledAt,
		&reminderSentAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		a.CancelledAt = &cancelledAt.Time
	}
	if reminderSentAt.Valid {
		a.ReminderSentAt = &reminderSentAt.Time
	}
	a.Date = domain.DateOnly(a.Date)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}
