package reschedule_appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/service/reservation"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const metricsOperation = "reschedule"

// UseCase use case для переноса записи на другой слот
type UseCase struct {
	resolver        Reserver
	appointmentRepo AppointmentRepository
	storeRepo       StoreRepository
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver Reserver,
	appointmentRepo AppointmentRepository,
	storeRepo StoreRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:        resolver,
		appointmentRepo: appointmentRepo,
		storeRepo:       storeRepo,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute переносит запись. Слот проверяется заново без учета самой записи,
// поэтому перенос внутри собственного слота не считается конфликтом.
// Запрос на тот же слот ничего не меняет и не проверяется повторно.
// Статус записи сохраняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, byToken=%t, date=%s, time=%s",
		req.AppointmentID, req.ByToken(), req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		uc.metrics.IncReservation(metricsOperation, reservation.OutcomeInvalid)
		return nil, err
	}

	var (
		result   *domain.Appointment
		store    *domain.Store
		prevDate  time.Time
		prevTime  types.TimeString
		unchanged bool
	)

	// 2. Загрузка, проверка и обновление в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем запись (FOR UPDATE внутри транзакции)
		appointment, err := uc.load(txCtx, req)
		if err != nil {
			return err
		}

		// 2.2. Проверяем права владельца
		if !req.ByToken() {
			if err := uc.checkOwner(txCtx, appointment.StoreID, req.UserID); err != nil {
				return err
			}
		}

		// 2.3. Отмененную запись перенести нельзя
		if !appointment.IsActive() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d has status %s", appointment.ID, appointment.Status)
			return ErrNotActive
		}

		// 2.4. Тот же слот: запись уже занимает его, проверка и обновление не нужны
		if domain.SameDate(appointment.Date, req.Date) && appointment.Time.Equal(req.Time) {
			uc.logger.Info("RescheduleAppointment: appointment id=%d already at %s %s, nothing to change",
				appointment.ID, appointment.Date.Format(domain.DateFormat), appointment.Time)
			result = appointment
			unchanged = true
			return nil
		}

		// 2.5. Проверяем новый слот без учета самой записи
		res, err := uc.resolver.Reserve(txCtx, &reservation.ReserveRequest{
			StoreID:              appointment.StoreID,
			ServiceID:            appointment.ServiceID,
			Date:                 req.Date,
			Time:                 req.Time,
			ExcludeAppointmentID: &appointment.ID,
		})
		if err != nil {
			return err
		}

		// 2.6. Сохраняем новый слот
		if err := uc.appointmentRepo.UpdateSlot(txCtx, appointment.ID, res.Date, res.Time, res.DurationMinutes); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		prevDate, prevTime = appointment.Date, appointment.Time
		appointment.Date = res.Date
		appointment.Time = res.Time
		appointment.DurationMinutes = res.DurationMinutes
		appointment.ReminderSentAt = nil

		result = appointment
		store = res.Store
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("RescheduleAppointment: serialization failure, slot taken concurrently: %v", err)
			err = fmt.Errorf("%w: retry with another slot", ErrSlotConflict)
		}
		uc.metrics.IncReservation(metricsOperation, reservation.Outcome(err))
		return nil, err
	}

	if unchanged {
		return newResponse(result, result.Date, result.Time), nil
	}

	uc.metrics.IncReservation(metricsOperation, reservation.OutcomeReserved)
	uc.logger.Info("RescheduleAppointment: appointment id=%d moved from %s %s to %s %s",
		result.ID, prevDate.Format(domain.DateFormat), prevTime, result.Date.Format(domain.DateFormat), result.Time)

	// 3. Уведомление после коммита, ошибка не влияет на результат
	if err := uc.notifier.NotifyRescheduled(ctx, store, result); err != nil {
		uc.logger.Warn("RescheduleAppointment: notification for appointment id=%d failed: %v", result.ID, err)
	}

	return newResponse(result, prevDate, prevTime), nil
}

func (uc *UseCase) load(ctx context.Context, req *Request) (*domain.Appointment, error) {
	var (
		appointment *domain.Appointment
		err         error
	)
	if req.ByToken() {
		appointment, err = uc.appointmentRepo.GetByPublicToken(ctx, req.PublicToken)
	} else {
		appointment, err = uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	}

	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment not found, id=%d", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}
	return appointment, nil
}

func (uc *UseCase) checkOwner(ctx context.Context, storeID, userID int64) error {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get store id=%d: %v", storeID, err)
		return fmt.Errorf("%w: failed to get store: %w", ErrInternal, err)
	}
	if !store.IsOwnedBy(userID) {
		uc.logger.Warn("RescheduleAppointment: user id=%d does not own store id=%d", userID, storeID)
		return ErrAccessDenied
	}
	return nil
}
