package appointments

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByPublicToken(ctx context.Context, token string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
}

// StoreRepository интерфейс репозитория магазинов
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
}

// Notifier уведомления о записи
type Notifier interface {
	NotifyCancelled(ctx context.Context, store *domain.Store, a *domain.Appointment) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
