package get_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error)
	GetByToken(ctx context.Context, token string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
