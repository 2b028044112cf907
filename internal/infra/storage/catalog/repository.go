package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository каталог услуг магазинов (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр каталога услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу магазина.
// Услуга другого магазина считается не найденной.
func (r *Repository) GetService(ctx context.Context, storeID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"store_id",
		"name",
		"duration_minutes",
		"price",
		"available_weekdays",
		"valid_from",
		"valid_until",
		"active",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "store_id": storeID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	var weekdays int16
	var validFrom, validUntil sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.StoreID,
		&s.Name,
		&s.DurationMinutes,
		&s.Price,
		&weekdays,
		&validFrom,
		&validUntil,
		&s.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	s.AvailableWeekdays = domain.WeekdaySet(weekdays) & domain.AllWeekdays
	if validFrom.Valid {
		from := domain.DateOnly(validFrom.Time)
		s.ValidFrom = &from
	}
	if validUntil.Valid {
		until := domain.DateOnly(validUntil.Time)
		s.ValidUntil = &until
	}

	return &s, nil
}
