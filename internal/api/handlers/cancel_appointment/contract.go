package cancel_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	CancelByToken(ctx context.Context, token string, reason *string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
