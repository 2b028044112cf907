package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	storeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SchedulingService/internal/slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Resolver повторно проверяет слот непосредственно перед записью в БД
type Resolver struct {
	storeRepo       StoreRepository
	catalog         ServiceCatalog
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewResolver создает новый экземпляр resolver
func NewResolver(
	storeRepo StoreRepository,
	catalog ServiceCatalog,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *Resolver {
	return &Resolver{
		storeRepo:       storeRepo,
		catalog:         catalog,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (r *Resolver) WithTimeProvider(tp TimeProvider) *Resolver {
	r.timeProvider = tp
	return r
}

// Reserve проверяет слот под блокировкой дня магазина.
// Должен вызываться внутри сериализуемой транзакции вызывающего; запись
// создается или переносится в той же транзакции после успешного ответа.
func (r *Resolver) Reserve(ctx context.Context, req *ReserveRequest) (*Reservation, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		r.logger.Error("Reserve: called outside of a transaction, store=%d", req.StoreID)
		return nil, ErrNotInTransaction
	}
	return r.evaluate(ctx, "Reserve", req, true)
}

// Check выполняет те же проверки без блокировки. Результат может устареть
// к моменту записи, поэтому запись всегда идет через Reserve.
func (r *Resolver) Check(ctx context.Context, req *ReserveRequest) (*Reservation, error) {
	return r.evaluate(ctx, "Check", req, false)
}

func (r *Resolver) evaluate(ctx context.Context, op string, req *ReserveRequest, lock bool) (*Reservation, error) {
	r.logger.Info("%s: store=%d, service=%d, date=%s, time=%s, exclude=%v",
		op, req.StoreID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time, formatID(req.ExcludeAppointmentID))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		r.logger.Warn("%s: validation failed: %v", op, err)
		return nil, err
	}

	// 2. Получаем магазин
	store, err := r.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			r.logger.Warn("%s: store id=%d not found", op, req.StoreID)
			return nil, ErrStoreNotFound
		}
		r.logger.Error("%s: failed to get store id=%d: %v", op, req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get store: %v", ErrInternal, err)
	}

	// 3. Получаем услугу
	service, err := r.catalog.GetService(ctx, req.StoreID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			r.logger.Warn("%s: service id=%d not found in store id=%d", op, req.ServiceID, req.StoreID)
			return nil, ErrServiceNotFound
		}
		r.logger.Error("%s: failed to get service id=%d: %v", op, req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Дата и время в часовом поясе магазина
	date := domain.DateOnly(req.Date)
	if err := validateMoment(store, date, req.Time, r.timeProvider.Now()); err != nil {
		r.logger.Warn("%s: date validation failed: %v", op, err)
		return nil, err
	}

	// 5. Доступность услуги в эту дату
	if err := service.CheckBookableOn(date); err != nil {
		r.logger.Warn("%s: service id=%d unavailable: %v", op, service.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	// 6. Слот должен совпадать с одним из кандидатов расписания
	schedule, err := r.scheduleRepo.GetWeeklySchedule(ctx, req.StoreID)
	if err != nil {
		r.logger.Error("%s: failed to get schedule for store id=%d: %v", op, req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	switch slots.Place(slots.Expand(schedule, date), req.Time, service.DurationMinutes) {
	case slots.PlacementOutside:
		r.logger.Warn("%s: store id=%d is closed at %s %s for %d minutes",
			op, req.StoreID, date.Format(domain.DateFormat), req.Time, service.DurationMinutes)
		return nil, ErrScheduleClosed
	case slots.PlacementOffGrid:
		r.logger.Warn("%s: time %s is not a slot start for service id=%d", op, req.Time, service.ID)
		return nil, fmt.Errorf("%w: slots are every %d minutes", ErrOffGrid, service.DurationMinutes)
	}

	// 7. Блокировка дня магазина до конца транзакции
	if lock {
		if err := r.appointmentRepo.LockStoreDay(ctx, req.StoreID, date); err != nil {
			r.logger.Error("%s: failed to lock store id=%d day %s: %v",
				op, req.StoreID, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to lock store day: %w", ErrInternal, err)
		}
	}

	// 8. Перечитываем занятость слота, не используя результат листинга
	occupied, err := r.appointmentRepo.CountAtSlot(ctx, domain.SlotQuery{
		StoreID:         req.StoreID,
		Date:            date,
		Time:            req.Time,
		DurationMinutes: service.DurationMinutes,
		ExcludeID:       req.ExcludeAppointmentID,
		Mode:            store.Capacity.Mode(),
	})
	if err != nil {
		r.logger.Error("%s: failed to count appointments at slot: %v", op, err)
		return nil, fmt.Errorf("%w: failed to count appointments: %w", ErrInternal, err)
	}

	// 9. Политика вместимости
	total := store.Capacity.EffectiveCap()
	if !slots.HasRoom(store.Capacity, occupied) {
		r.logger.Warn("%s: slot %s %s is full, %d/%d spots taken",
			op, date.Format(domain.DateFormat), req.Time, occupied, total)
		return nil, fmt.Errorf("%w: %d/%d spots taken", ErrSlotConflict, occupied, total)
	}

	r.logger.Info("%s: slot %s %s available, %d/%d spots taken",
		op, date.Format(domain.DateFormat), req.Time, occupied, total)

	return &Reservation{
		Store:           store,
		Service:         service,
		Date:            date,
		Time:            req.Time,
		DurationMinutes: service.DurationMinutes,
		Occupied:        occupied,
		TotalSpots:      total,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *ReserveRequest) error {
	if req.StoreID <= 0 {
		return fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	if req.ExcludeAppointmentID != nil && *req.ExcludeAppointmentID <= 0 {
		return fmt.Errorf("%w: excludeAppointmentID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateMoment проверяет прошедшее время, минимальное время до записи и горизонт записи
func validateMoment(store *domain.Store, date time.Time, at types.TimeString, now time.Time) error {
	loc := store.Location()
	localNow := now.In(loc)
	today := domain.DateOnly(localNow)

	if date.Before(today) {
		return fmt.Errorf("%w: %s is before %s", ErrDateInPast, date.Format(domain.DateFormat), today.Format(domain.DateFormat))
	}

	if store.HasAdvanceBookingLimit() {
		maxDate := today.AddDate(0, 0, store.AdvanceBookingDays)
		if date.After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, store.AdvanceBookingDays)
		}
	}

	start := at.OnDate(date, loc)
	if start.Before(localNow) {
		return fmt.Errorf("%w: slot started at %s", ErrDateInPast, start.Format(time.RFC3339))
	}

	notice := time.Duration(store.MinBookingNoticeMinutes) * time.Minute
	if notice > 0 && start.Before(localNow.Add(notice)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, store.MinBookingNoticeMinutes)
	}

	return nil
}

func formatID(id *int64) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *id)
}
