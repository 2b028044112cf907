package reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// StoreRepository интерфейс репозитория магазинов
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetService(ctx context.Context, storeID, serviceID int64) (*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	GetWeeklySchedule(ctx context.Context, storeID int64) (domain.WeeklySchedule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// LockStoreDay берет транзакционную блокировку на день магазина
	LockStoreDay(ctx context.Context, storeID int64, date time.Time) error
	CountAtSlot(ctx context.Context, q domain.SlotQuery) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
