package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	storeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SchedulingService/internal/slots"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	storeRepo       StoreRepository
	catalog         ServiceCatalog
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	storeRepo StoreRepository,
	catalog ServiceCatalog,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		storeRepo:       storeRepo,
		catalog:         catalog,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов.
// Отсутствие слотов не является ошибкой: возвращаются пустые дни.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: store=%d, service=%d, from=%s, to=%s",
		req.StoreID, req.ServiceID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	from, to := domain.DateOnly(req.From), domain.DateOnly(req.To)

	// 2. Получаем магазин
	store, err := uc.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			uc.logger.Warn("GetAvailableSlots: store id=%d not found", req.StoreID)
			return nil, ErrStoreNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get store id=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get store: %v", ErrInternal, err)
	}

	// 3. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.StoreID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found in store id=%d", req.ServiceID, req.StoreID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Текущее время в часовом поясе магазина
	loc := store.Location()
	now := uc.timeProvider.Now().In(loc)
	today := domain.DateOnly(now)

	// 5. Валидация дат с учетом настроек магазина
	if err := validateDates(from, to, today, store.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 6. Получаем недельное расписание
	schedule, err := uc.scheduleRepo.GetWeeklySchedule(ctx, req.StoreID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule for store id=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 7. Получаем активные записи за весь диапазон одним запросом
	appointments, err := uc.appointmentRepo.ListActive(ctx, req.StoreID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Считаем слоты по дням
	earliest := now.Add(time.Duration(store.MinBookingNoticeMinutes) * time.Minute)
	days := make([]Day, 0, daysBetween(from, to)+1)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		available := slots.Calculate(slots.Input{
			Schedule:             schedule,
			Service:              *service,
			Capacity:             store.Capacity,
			Date:                 date,
			Appointments:         appointments,
			ExcludeAppointmentID: req.ExcludeAppointmentID,
		})

		if domain.SameDate(date, today) {
			available = dropBefore(available, earliest, loc)
		}

		days = append(days, Day{Date: date, Slots: toSlots(available)})
	}

	resp := &Response{
		StoreID:         req.StoreID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Days:            days,
	}
	uc.metrics.AddSlotsListed(resp.TotalSlots())

	uc.logger.Info("GetAvailableSlots: generated %d slots for store=%d, service=%d, %d days",
		resp.TotalSlots(), req.StoreID, req.ServiceID, len(days))

	return resp, nil
}

// dropBefore убирает слоты сегодняшнего дня, начинающиеся раньше earliest
func dropBefore(available []domain.AvailableSlot, earliest time.Time, loc *time.Location) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0, len(available))
	for _, s := range available {
		if s.StartTime.OnDate(s.Date, loc).Before(earliest) {
			continue
		}
		result = append(result, s)
	}
	return result
}

func toSlots(available []domain.AvailableSlot) []Slot {
	result := make([]Slot, len(available))
	for i, s := range available {
		result[i] = Slot{
			StartTime:       s.StartTime,
			DurationMinutes: s.DurationMinutes,
			AvailableSpots:  s.AvailableSpots,
			TotalSpots:      s.TotalSpots,
		}
	}
	return result
}
