package create_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/reservation"
)

// Reserver проверяет слот под блокировкой внутри транзакции
type Reserver interface {
	Reserve(ctx context.Context, req *reservation.ReserveRequest) (*reservation.Reservation, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// IdempotencyStore хранилище ключей идемпотентности
type IdempotencyStore interface {
	Acquire(ctx context.Context, storeID int64, key string) (appointmentID int64, acquired bool, err error)
	Complete(ctx context.Context, storeID int64, key string, appointmentID int64) error
	Release(ctx context.Context, storeID int64, key string) error
}

// Notifier уведомления о записи
type Notifier interface {
	NotifyCreated(ctx context.Context, store *domain.Store, a *domain.Appointment) error
}

// Metrics интерфейс метрик
type Metrics interface {
	IncReservation(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
