package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AvailableSlot represents a time slot available for booking
type AvailableSlot struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	AvailableSpots  int
	TotalSpots      int
}
