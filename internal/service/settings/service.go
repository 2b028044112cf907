package settings

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	storeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
)

var phonePattern = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// Service сервис настроек записи магазина: вместимость слота и окно записи
type Service struct {
	storeRepo StoreRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(storeRepo StoreRepository, logger Logger) *Service {
	return &Service{
		storeRepo: storeRepo,
		logger:    logger,
	}
}

// Get получает настройки магазина
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, storeID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for store=%d", storeID)

	store, err := s.getStore(ctx, "Get", storeID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainStore(store), nil
}

// Update обновляет настройки магазина
// Доступно только владельцу магазина
func (s *Service) Update(ctx context.Context, storeID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for store=%d by user=%d", storeID, req.UserID)

	if req.IsEmpty() {
		s.logger.Warn("Update: no fields to update for store=%d", storeID)
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	store, err := s.getStore(ctx, "Update", storeID)
	if err != nil {
		return nil, err
	}

	if !store.IsOwnedBy(req.UserID) {
		s.logger.Warn("Update: user=%d does not own store=%d", req.UserID, storeID)
		return nil, ErrAccessDenied
	}

	req.Apply(store)

	if err := validateSettings(store); err != nil {
		s.logger.Warn("Update: validation failed for store=%d: %v", storeID, err)
		return nil, err
	}

	updated, err := s.storeRepo.UpdateSettings(ctx, store)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		s.logger.Error("Update: repository error for store=%d: %v", storeID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for store=%d, capacity=%d, mode=%s",
		storeID, updated.Capacity.EffectiveCap(), updated.Capacity.Mode())
	return models.FromDomainStore(updated), nil
}

func (s *Service) getStore(ctx context.Context, op string, storeID int64) (*domain.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			s.logger.Warn("%s: store id=%d not found", op, storeID)
			return nil, ErrStoreNotFound
		}
		s.logger.Error("%s: repository error for store id=%d: %v", op, storeID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return store, nil
}

// validateSettings валидирует итоговые настройки магазина
func validateSettings(store *domain.Store) error {
	if store.Timezone != "" {
		if _, err := time.LoadLocation(store.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, store.Timezone)
		}
	}

	if store.NotificationPhone != nil && !phonePattern.MatchString(*store.NotificationPhone) {
		return fmt.Errorf("%w: notificationPhone must be in E.164 format", ErrInvalidInput)
	}

	if store.Capacity.MaxPerSlot < domain.MinPerSlot || store.Capacity.MaxPerSlot > domain.MaxPerSlot {
		return fmt.Errorf("%w: maxPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinPerSlot, domain.MaxPerSlot)
	}

	if !store.Capacity.Mode().IsValid() {
		return fmt.Errorf("%w: occupancyMode must be %q or %q",
			ErrInvalidInput, domain.OccupancyExactStart, domain.OccupancyOverlap)
	}

	if store.AdvanceBookingDays < 0 || store.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d",
			ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}

	if store.MinBookingNoticeMinutes < 0 || store.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxBookingNoticeMinutes)
	}

	return nil
}
