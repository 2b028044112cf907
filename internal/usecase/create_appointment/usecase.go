package create_appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/idempotency"
	"github.com/m04kA/SMC-SchedulingService/internal/service/reservation"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

const metricsOperation = "create"

// UseCase use case для создания записи
type UseCase struct {
	resolver        Reserver
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	idempotency     IdempotencyStore
	notifier        Notifier
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// idempotency может быть nil: тогда Idempotency-Key игнорируется.
func NewUseCase(
	resolver Reserver,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	idempotency IdempotencyStore,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:        resolver,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		idempotency:     idempotency,
		notifier:        notifier,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка слота и вставка идут в одной сериализуемой транзакции под
// блокировкой дня магазина, поэтому вместимость не может быть превышена.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: store=%d, service=%d, date=%s, time=%s",
		req.StoreID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.metrics.IncReservation(metricsOperation, reservation.OutcomeInvalid)
		return nil, err
	}

	// 2. Ключ идемпотентности
	key := req.IdempotencyKey
	if uc.idempotency == nil {
		key = ""
	}
	if key != "" {
		existingID, acquired, err := uc.idempotency.Acquire(ctx, req.StoreID, key)
		switch {
		case errors.Is(err, idempotency.ErrInProgress):
			uc.logger.Warn("CreateAppointment: idempotency key %q is in progress", key)
			return nil, ErrRequestInProgress
		case errors.Is(err, idempotency.ErrInvalidKey):
			uc.logger.Warn("CreateAppointment: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case err != nil:
			// Без redis запись все равно создается, теряется только защита от повтора
			uc.logger.Error("CreateAppointment: idempotency store unavailable: %v", err)
			key = ""
		case !acquired:
			return uc.replay(ctx, existingID)
		}
	}

	var (
		result *domain.Appointment
		store  *domain.Store
	)

	// 3. Проверяем слот и создаем запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Повторная проверка слота под блокировкой
		res, err := uc.resolver.Reserve(txCtx, &reservation.ReserveRequest{
			StoreID:   req.StoreID,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			Time:      req.Time,
		})
		if err != nil {
			return err
		}

		// 3.2. Создаем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			StoreID:         req.StoreID,
			ServiceID:       req.ServiceID,
			PublicToken:     uuid.NewString(),
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
			Date:            res.Date,
			Time:            res.Time,
			DurationMinutes: res.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     res.Service.Name,
			PriceSnapshot:   res.Service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		store = res.Store
		return nil
	})

	if err != nil {
		uc.release(ctx, req.StoreID, key)

		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateAppointment: serialization failure, slot taken concurrently: %v", err)
			err = fmt.Errorf("%w: retry with another slot", ErrSlotConflict)
		}
		uc.metrics.IncReservation(metricsOperation, reservation.Outcome(err))
		return nil, err
	}

	uc.metrics.IncReservation(metricsOperation, reservation.OutcomeReserved)
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 4. Сохраняем результат для повторов с тем же ключом
	if key != "" {
		uc.completeKey(ctx, req.StoreID, key, result.ID)
	}

	// 5. Уведомление после коммита, ошибка не влияет на результат
	if err := uc.notifier.NotifyCreated(ctx, store, result); err != nil {
		uc.logger.Warn("CreateAppointment: notification for appointment id=%d failed: %v", result.ID, err)
	}

	return newResponse(result, false), nil
}

// completeKey заменяет маркер pending на ID записи, одна повторная попытка.
// Если ключ остался pending, после истечения маркера повтор создаст вторую запись.
func (uc *UseCase) completeKey(ctx context.Context, storeID int64, key string, appointmentID int64) {
	err := uc.idempotency.Complete(ctx, storeID, key, appointmentID)
	if err == nil {
		return
	}
	uc.logger.Warn("CreateAppointment: failed to complete idempotency key %q, retrying: %v", key, err)

	if err = uc.idempotency.Complete(ctx, storeID, key, appointmentID); err != nil {
		uc.logger.Error("CreateAppointment: idempotency key %q left pending for appointment id=%d, store id=%d: %v",
			key, appointmentID, storeID, err)
	}
}

// replay возвращает запись, созданную ранее с тем же ключом
func (uc *UseCase) replay(ctx context.Context, appointmentID int64) (*Response, error) {
	existing, err := uc.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to load replayed appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: failed to load appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: replayed appointment id=%d", existing.ID)
	return newResponse(existing, true), nil
}

func (uc *UseCase) release(ctx context.Context, storeID int64, key string) {
	if key == "" {
		return
	}
	if err := uc.idempotency.Release(ctx, storeID, key); err != nil {
		uc.logger.Error("CreateAppointment: failed to release idempotency key %q: %v", key, err)
	}
}
