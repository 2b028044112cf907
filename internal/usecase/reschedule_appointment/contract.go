package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/reservation"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Reserver проверяет слот под блокировкой внутри транзакции
type Reserver interface {
	Reserve(ctx context.Context, req *reservation.ReserveRequest) (*reservation.Reservation, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByPublicToken(ctx context.Context, token string) (*domain.Appointment, error)
	UpdateSlot(ctx context.Context, id int64, date time.Time, at types.TimeString, durationMinutes int) error
}

// StoreRepository интерфейс репозитория магазинов
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier уведомления о записи
type Notifier interface {
	NotifyRescheduled(ctx context.Context, store *domain.Store, a *domain.Appointment) error
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
