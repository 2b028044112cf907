package slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type span struct {
	start int
	end   int
}

// Occupancy counts active appointments of a single date.
// Built per calculation and never shared between requests.
type Occupancy struct {
	mode   domain.OccupancyMode
	starts map[int]int
	spans  []span
}

// NewOccupancy indexes the pending and confirmed appointments on date,
// skipping excludeID.
func NewOccupancy(appointments []*domain.Appointment, date time.Time, excludeID *int64, mode domain.OccupancyMode) *Occupancy {
	o := &Occupancy{
		mode:   mode,
		starts: make(map[int]int),
	}

	for _, a := range appointments {
		if a == nil || !a.IsActive() || !domain.SameDate(a.Date, date) {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		start := a.Time.Minutes()
		if start < 0 {
			continue
		}
		o.starts[start]++
		o.spans = append(o.spans, span{start: start, end: start + a.DurationMinutes})
	}

	return o
}

// Count returns how many indexed appointments occupy the slot
func (o *Occupancy) Count(start types.TimeString, durationMinutes int) int {
	s := start.Minutes()
	if o.mode != domain.OccupancyOverlap {
		return o.starts[s]
	}

	e := s + durationMinutes
	count := 0
	for _, sp := range o.spans {
		// Touching intervals do not overlap
		if sp.start < e && sp.end > s {
			count++
		}
	}
	return count
}
