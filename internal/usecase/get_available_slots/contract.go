package get_available_slots

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
	// ListActive возвращает активные записи магазина за диапазон дат включительно
	ListActive(ctx context.Context, storeID int64, from, to time.Time) ([]*domain.Appointment, error)
}

// Metrics интерфейс метрик
type Metrics interface {
	AddSlotsListed(count int)
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
