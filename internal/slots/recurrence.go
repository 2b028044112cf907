// Package slots computes bookable time slots from a weekly schedule,
// a service and the appointments already booked. Everything here is a pure
// function of its arguments.
package slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Expand returns the open intervals of schedule on date in chronological order.
// A missing or disabled weekday yields no intervals.
func Expand(schedule domain.WeeklySchedule, date time.Time) []domain.Interval {
	day, ok := schedule.Day(date.Weekday())
	if !ok || !day.Enabled || day.Hours == nil {
		return nil
	}
	return day.Hours.Intervals()
}
