package slots

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Placement describes where a requested start time falls relative to the open intervals
type Placement int

const (
	// PlacementOutside no interval contains [start, start+duration)
	PlacementOutside Placement = iota
	// PlacementOffGrid contained, but not on the duration step of its interval
	PlacementOffGrid
	// PlacementOnGrid contained and equal to one of the generated candidates
	PlacementOnGrid
)

// Candidates returns the start times stepped by durationMinutes from the
// start of every interval whose [start, start+duration) fits in that interval.
func Candidates(intervals []domain.Interval, durationMinutes int) []types.TimeString {
	if durationMinutes <= 0 {
		return nil
	}

	result := make([]types.TimeString, 0)
	for _, interval := range intervals {
		start, end := interval.Start.Minutes(), interval.End.Minutes()
		if start < 0 || end < 0 {
			continue
		}
		for c := start; c+durationMinutes <= end; c += durationMinutes {
			ts, err := types.NewTimeStringFromMinutes(c)
			if err != nil {
				break
			}
			result = append(result, ts)
		}
	}
	return result
}

// Place classifies a requested start time against intervals
func Place(intervals []domain.Interval, start types.TimeString, durationMinutes int) Placement {
	for _, interval := range intervals {
		if !interval.Contains(start, durationMinutes) {
			continue
		}
		if (start.Minutes()-interval.Start.Minutes())%durationMinutes == 0 {
			return PlacementOnGrid
		}
		return PlacementOffGrid
	}
	return PlacementOutside
}
