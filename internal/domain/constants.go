package domain

import "time"

// Default store settings
const (
	DefaultMaxPerSlot              = 1
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
	DefaultTimezone                = "UTC"
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MinPerSlot                  = 1
	MaxPerSlot                  = 100
	MaxAdvanceBookingDays       = 365
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 120
	MaxRangeDays                = 31
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy capacity
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// DateOnly truncates t to its civil date. The result is in UTC so that two
// dates compare equal regardless of the location they were parsed in.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same civil date.
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
