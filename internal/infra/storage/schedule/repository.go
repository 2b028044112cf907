package schedule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания магазина (только чтение)
type Repository struct {
	db     dbmetrics.DBExecutor
	logger Logger
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// WithLogger включает логирование несогласованных строк расписания
func (r *Repository) WithLogger(logger Logger) *Repository {
	r.logger = logger
	return r
}

// GetWeeklySchedule получает расписание магазина.
// Магазин без строк расписания получает пустую неделю (все дни закрыты).
// Несогласованная строка закрывает только свой день.
func (r *Repository) GetWeeklySchedule(ctx context.Context, storeID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	schedule := domain.WeeklySchedule{StoreID: storeID}

	query, args, err := psqlbuilder.Select(
		"weekday",
		"enabled",
		"mode",
		"start_time",
		"end_time",
		"morning_start",
		"morning_end",
		"afternoon_start",
		"afternoon_end",
	).
		From("store_working_hours").
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return schedule, fmt.Errorf("%w: GetWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return schedule, fmt.Errorf("%w: GetWeeklySchedule - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var scanned []row
	for rows.Next() {
		var rw row
		err := rows.Scan(
			&rw.Weekday,
			&rw.Enabled,
			&rw.Mode,
			&rw.StartTime,
			&rw.EndTime,
			&rw.MorningStart,
			&rw.MorningEnd,
			&rw.AfternoonStart,
			&rw.AfternoonEnd,
		)
		if err != nil {
			return schedule, fmt.Errorf("%w: GetWeeklySchedule - scan row: %w", ErrScanRow, err)
		}

		scanned = append(scanned, rw)
	}

	if err := rows.Err(); err != nil {
		return schedule, fmt.Errorf("%w: GetWeeklySchedule - rows error: %w", ErrScanRow, err)
	}

	return toWeeklySchedule(storeID, scanned, func(err error) {
		if r.logger != nil {
			r.logger.Error("GetWeeklySchedule: store %d: day treated as closed: %v", storeID, err)
		}
	}), nil
}
