package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ScheduleMode names the working hours variant
type ScheduleMode string

const (
	ModeContinuous ScheduleMode = "continuous"
	ModeSplit      ScheduleMode = "split"
)

var (
	// ErrInvalidWorkingHours returned when working hours bounds are inconsistent
	ErrInvalidWorkingHours = Mark("invalid working hours", ErrValidation)
)

// Interval is a half-open [Start, End) stretch of wall-clock time
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains reports whether [start, start+duration) lies inside the interval
func (i Interval) Contains(start types.TimeString, durationMinutes int) bool {
	s := start.Minutes()
	if s < 0 || durationMinutes <= 0 {
		return false
	}
	return s >= i.Start.Minutes() && s+durationMinutes <= i.End.Minutes()
}

// WorkingHours is either ContinuousHours or SplitHours.
// Values are built with NewContinuousHours / NewSplitHours.
type WorkingHours interface {
	Mode() ScheduleMode
	// Intervals returns the open intervals in chronological order
	Intervals() []Interval
	workingHours()
}

// ContinuousHours one open interval
type ContinuousHours struct {
	start types.TimeString
	end   types.TimeString
}

// NewContinuousHours validates start < end
func NewContinuousHours(start, end types.TimeString) (ContinuousHours, error) {
	if err := validateBounds(start, end); err != nil {
		return ContinuousHours{}, err
	}
	return ContinuousHours{start: start, end: end}, nil
}

func (h ContinuousHours) Mode() ScheduleMode      { return ModeContinuous }
func (h ContinuousHours) Start() types.TimeString { return h.start }
func (h ContinuousHours) End() types.TimeString   { return h.end }
func (h ContinuousHours) workingHours()           {}

func (h ContinuousHours) Intervals() []Interval {
	return []Interval{{Start: h.start, End: h.end}}
}

// SplitHours morning and afternoon intervals separated by a break
type SplitHours struct {
	morningStart   types.TimeString
	morningEnd     types.TimeString
	afternoonStart types.TimeString
	afternoonEnd   types.TimeString
}

// NewSplitHours validates morningStart < morningEnd <= afternoonStart < afternoonEnd
func NewSplitHours(morningStart, morningEnd, afternoonStart, afternoonEnd types.TimeString) (SplitHours, error) {
	if err := validateBounds(morningStart, morningEnd); err != nil {
		return SplitHours{}, fmt.Errorf("morning: %w", err)
	}
	if err := validateBounds(afternoonStart, afternoonEnd); err != nil {
		return SplitHours{}, fmt.Errorf("afternoon: %w", err)
	}
	if afternoonStart.IsBefore(morningEnd) {
		return SplitHours{}, fmt.Errorf("%w: morning ends at %s after afternoon starts at %s",
			ErrInvalidWorkingHours, morningEnd, afternoonStart)
	}
	return SplitHours{
		morningStart:   morningStart,
		morningEnd:     morningEnd,
		afternoonStart: afternoonStart,
		afternoonEnd:   afternoonEnd,
	}, nil
}

func (h SplitHours) Mode() ScheduleMode               { return ModeSplit }
func (h SplitHours) MorningStart() types.TimeString   { return h.morningStart }
func (h SplitHours) MorningEnd() types.TimeString     { return h.morningEnd }
func (h SplitHours) AfternoonStart() types.TimeString { return h.afternoonStart }
func (h SplitHours) AfternoonEnd() types.TimeString   { return h.afternoonEnd }
func (h SplitHours) workingHours()                    {}

func (h SplitHours) Intervals() []Interval {
	return []Interval{
		{Start: h.morningStart, End: h.morningEnd},
		{Start: h.afternoonStart, End: h.afternoonEnd},
	}
}

func validateBounds(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidWorkingHours, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidWorkingHours, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWorkingHours, start, end)
	}
	return nil
}

// DaySchedule working hours for one weekday
type DaySchedule struct {
	Weekday time.Weekday
	Enabled bool
	Hours   WorkingHours // nil when the day was never configured
}

// WeeklySchedule the store's recurring week, at most one entry per weekday
type WeeklySchedule struct {
	StoreID int64
	Days    []DaySchedule
}

// Day returns the entry for weekday, if any
func (w WeeklySchedule) Day(weekday time.Weekday) (DaySchedule, bool) {
	for _, d := range w.Days {
		if d.Weekday == weekday {
			return d, true
		}
	}
	return DaySchedule{}, false
}
