package settings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// StoreRepository интерфейс репозитория магазинов
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	UpdateSettings(ctx context.Context, s *domain.Store) (*domain.Store, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
