package slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Input everything Calculate needs for one store, service and date
type Input struct {
	Schedule             domain.WeeklySchedule
	Service              domain.Service
	Capacity             domain.CapacityConfig
	Date                 time.Time
	Appointments         []*domain.Appointment
	ExcludeAppointmentID *int64
}

// Calculate returns the bookable slots in chronological order.
// An empty result is the normal answer for a closed day or a full schedule.
func Calculate(in Input) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0)

	// 1. Service gating: active, validity window, weekday mask
	if !in.Service.IsBookableOn(in.Date) {
		return result
	}

	// 2. Open intervals of the day
	intervals := Expand(in.Schedule, in.Date)
	if len(intervals) == 0 {
		return result
	}

	// 3. Candidates stepped by the service duration
	duration := in.Service.DurationMinutes
	candidates := Candidates(intervals, duration)

	// 4. Occupancy of the day without the appointment being edited
	occupancy := NewOccupancy(in.Appointments, in.Date, in.ExcludeAppointmentID, in.Capacity.Mode())

	// 5. Capacity check per candidate
	total := in.Capacity.EffectiveCap()
	for _, start := range candidates {
		occupied := occupancy.Count(start, duration)
		if !HasRoom(in.Capacity, occupied) {
			continue
		}
		result = append(result, domain.AvailableSlot{
			Date:            domain.DateOnly(in.Date),
			StartTime:       start,
			DurationMinutes: duration,
			AvailableSpots:  Remaining(in.Capacity, occupied),
			TotalSpots:      total,
		})
	}

	return result
}
