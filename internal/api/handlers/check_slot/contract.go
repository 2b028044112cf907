package check_slot

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/reservation"
)

type SlotChecker interface {
	Check(ctx context.Context, req *reservation.ReserveRequest) (*reservation.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
