package store

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

// Repository репозиторий магазинов и их настроек записи
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория магазинов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает магазин по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_user_id",
		"name",
		"timezone",
		"notification_phone",
		"allow_multiple",
		"max_per_slot",
		"occupancy_mode",
		"advance_booking_days",
		"min_booking_notice_minutes",
		"created_at",
		"updated_at",
	).
		From("stores").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Store
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.OwnerUserID,
		&s.Name,
		&s.Timezone,
		&s.NotificationPhone,
		&s.Capacity.AllowMultiple,
		&s.Capacity.MaxPerSlot,
		&s.Capacity.OccupancyMode,
		&s.AdvanceBookingDays,
		&s.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan store: %w", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// UpdateSettings обновляет настройки записи магазина
func (r *Repository) UpdateSettings(ctx context.Context, s *domain.Store) (*domain.Store, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("stores").
		Set("timezone", s.Timezone).
		Set("notification_phone", s.NotificationPhone).
		Set("allow_multiple", s.Capacity.AllowMultiple).
		Set("max_per_slot", s.Capacity.MaxPerSlot).
		Set("occupancy_mode", s.Capacity.Mode()).
		Set("advance_booking_days", s.AdvanceBookingDays).
		Set("min_booking_notice_minutes", s.MinBookingNoticeMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSettings - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSettings - execute update: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
