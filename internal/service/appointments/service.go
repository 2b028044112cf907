package appointments

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	storeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// Service сервис для чтения записей и смены их статуса.
// Перенос записи на другой слот выполняет reschedule_appointment.
type Service struct {
	appointmentRepo AppointmentRepository
	storeRepo       StoreRepository
	notifier        Notifier
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	storeRepo StoreRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		storeRepo:       storeRepo,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID. Доступно только владельцу магазина.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.getByID(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if _, err := s.checkOwner(ctx, appointment.StoreID, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetByToken получает запись по публичному токену клиента
func (s *Service) GetByToken(ctx context.Context, token string) (*models.AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.GetByPublicToken(ctx, token)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByToken: appointment not found")
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByToken - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAppointment(appointment), nil
}

// List получает записи магазина с фильтрацией по периоду и статусу.
// По умолчанию отмененные записи не возвращаются.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for store=%d, user=%d, includeCancelled=%t",
		req.StoreID, req.UserID, req.IncludeCancelled)

	if _, err := s.checkOwner(ctx, req.StoreID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments for store=%d", len(list), req.StoreID)
	return models.FromDomainAppointmentList(list), nil
}

// UpdateStatus меняет статус записи от имени владельца магазина.
// Допустимы pending -> confirmed и pending|confirmed -> cancelled, слот не перепроверяется.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d", id, req.Status, req.UserID)

	next, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	var (
		result *domain.Appointment
		store  *domain.Store
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.getByID(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		store, err = s.checkOwner(txCtx, appointment.StoreID, req.UserID)
		if err != nil {
			return err
		}

		result, err = s.transition(txCtx, "UpdateStatus", appointment, next, req.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifyCancelled(ctx, store, result)
	return models.FromDomainAppointment(result), nil
}

// CancelByToken отменяет запись по публичному токену клиента
func (s *Service) CancelByToken(ctx context.Context, token string, reason *string) (*models.AppointmentResponse, error) {
	s.logger.Info("CancelByToken: cancelling appointment by token")

	if err := validateReason(reason); err != nil {
		return nil, err
	}

	var (
		result *domain.Appointment
		store  *domain.Store
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByPublicToken(txCtx, token)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("CancelByToken: appointment not found")
				return ErrAppointmentNotFound
			}
			s.logger.Error("CancelByToken: repository error: %v", err)
			return fmt.Errorf("%w: CancelByToken - repository error: %v", ErrInternal, err)
		}

		store, err = s.storeRepo.GetByID(txCtx, appointment.StoreID)
		if err != nil {
			s.logger.Error("CancelByToken: failed to get store id=%d: %v", appointment.StoreID, err)
			return fmt.Errorf("%w: CancelByToken - failed to get store: %v", ErrInternal, err)
		}

		result, err = s.transition(txCtx, "CancelByToken", appointment, domain.StatusCancelled, reason)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifyCancelled(ctx, store, result)
	return models.FromDomainAppointment(result), nil
}

// Вспомогательные методы

// transition проверяет и сохраняет смену статуса
func (s *Service) transition(
	ctx context.Context,
	op string,
	appointment *domain.Appointment,
	next domain.AppointmentStatus,
	reason *string,
) (*domain.Appointment, error) {
	if !appointment.CanTransitionTo(next) {
		s.logger.Warn("%s: appointment id=%d cannot move from %s to %s", op, appointment.ID, appointment.Status, next)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, next)
	}

	var err error
	if next == domain.StatusCancelled {
		err = s.appointmentRepo.Cancel(ctx, appointment.ID, reason)
		appointment.CancellationReason = reason
	} else {
		err = s.appointmentRepo.UpdateStatus(ctx, appointment.ID, next)
	}
	if err != nil {
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, appointment.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: appointment id=%d moved from %s to %s", op, appointment.ID, appointment.Status, next)
	appointment.Status = next
	return appointment, nil
}

func (s *Service) getByID(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

// checkOwner проверяет, что пользователь владеет магазином
func (s *Service) checkOwner(ctx context.Context, storeID, userID int64) (*domain.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			s.logger.Warn("checkOwner: store id=%d not found", storeID)
			return nil, ErrStoreNotFound
		}
		s.logger.Error("checkOwner: failed to get store id=%d: %v", storeID, err)
		return nil, fmt.Errorf("%w: checkOwner - failed to get store: %v", ErrInternal, err)
	}

	if !store.IsOwnedBy(userID) {
		s.logger.Warn("checkOwner: user=%d does not own store=%d", userID, storeID)
		return nil, ErrAccessDenied
	}
	return store, nil
}

func (s *Service) notifyCancelled(ctx context.Context, store *domain.Store, a *domain.Appointment) {
	if a.Status != domain.StatusCancelled {
		return
	}
	if err := s.notifier.NotifyCancelled(ctx, store, a); err != nil {
		s.logger.Warn("notifyCancelled: notification for appointment id=%d failed: %v", a.ID, err)
	}
}

func validateReason(reason *string) error {
	if reason == nil {
		return nil
	}
	if utf8.RuneCountInString(strings.TrimSpace(*reason)) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}
