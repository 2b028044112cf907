package reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListForReminder(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) error
}

// StoreRepository интерфейс репозитория магазинов
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
}

// Notifier отправка напоминания клиенту
type Notifier interface {
	SendReminder(ctx context.Context, store *domain.Store, a *domain.Appointment) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
