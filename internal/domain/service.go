package domain

import (
	"fmt"
	"time"
)

var (
	// ErrServiceInactive service is switched off
	ErrServiceInactive = Mark("service is inactive", ErrServiceUnavailable)

	// ErrServiceOutOfWindow date is outside [ValidFrom, ValidUntil]
	ErrServiceOutOfWindow = Mark("service is not offered on this date", ErrServiceUnavailable)

	// ErrServiceWeekday weekday is not in AvailableWeekdays
	ErrServiceWeekday = Mark("service is not offered on this weekday", ErrServiceUnavailable)
)

// WeekdaySet is a bitmask of time.Weekday values (bit 0 = Sunday)
type WeekdaySet uint8

// AllWeekdays every day of the week
const AllWeekdays WeekdaySet = 1<<7 - 1

// NewWeekdaySet builds a set from weekdays
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// Has reports whether d is in the set
func (s WeekdaySet) Has(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return s&(1<<uint(d)) != 0
}

// IsEmpty reports whether no weekday is set
func (s WeekdaySet) IsEmpty() bool {
	return s&AllWeekdays == 0
}

// Days returns the weekdays in order Sunday..Saturday
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Service represents a bookable service of a store
type Service struct {
	ID                int64
	StoreID           int64
	Name              string
	DurationMinutes   int
	Price             float64
	AvailableWeekdays WeekdaySet
	ValidFrom         *time.Time // inclusive civil date, nil = unbounded
	ValidUntil        *time.Time // inclusive civil date, nil = unbounded
	Active            bool
}

// CheckBookableOn returns nil if the service can be booked on date,
// otherwise an error of kind ErrServiceUnavailable naming the reason.
func (s *Service) CheckBookableOn(date time.Time) error {
	if !s.Active {
		return ErrServiceInactive
	}

	day := DateOnly(date)
	if s.ValidFrom != nil && day.Before(DateOnly(*s.ValidFrom)) {
		return fmt.Errorf("%w: valid from %s", ErrServiceOutOfWindow, s.ValidFrom.Format(DateFormat))
	}
	if s.ValidUntil != nil && day.After(DateOnly(*s.ValidUntil)) {
		return fmt.Errorf("%w: valid until %s", ErrServiceOutOfWindow, s.ValidUntil.Format(DateFormat))
	}

	if !s.AvailableWeekdays.Has(date.Weekday()) {
		return fmt.Errorf("%w: %s", ErrServiceWeekday, date.Weekday())
	}

	return nil
}

// IsBookableOn reports whether the service yields slots on date
func (s *Service) IsBookableOn(date time.Time) bool {
	return s.CheckBookableOn(date) == nil
}
