package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Appointment represents a booked service slot at a store
type Appointment struct {
	ID          int64
	StoreID     int64
	ServiceID   int64
	PublicToken string // self-service link token

	CustomerName  string
	CustomerPhone string

	Date            time.Time // civil date in the store's timezone
	Time            types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName   string
	PriceSnapshot float64
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time
	ReminderSentAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies capacity
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status change is allowed:
// pending -> confirmed, pending|confirmed -> cancelled. Cancelled is terminal.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}

// EndMinutes returns the end of the appointment in minutes from midnight
func (a *Appointment) EndMinutes() int {
	return a.Time.Minutes() + a.DurationMinutes
}

// StartsAt returns the appointment start as an instant in loc
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	return a.Time.OnDate(a.Date, loc)
}

// AppointmentsFilter filter for listing store appointments
type AppointmentsFilter struct {
	StoreID          int64              // required
	From             *time.Time         // inclusive, nil = unbounded
	To               *time.Time         // inclusive, nil = unbounded
	Status           *AppointmentStatus // optional
	IncludeCancelled bool
}

// SlotQuery identifies a slot for an occupancy count
type SlotQuery struct {
	StoreID         int64
	Date            time.Time
	Time            types.TimeString
	DurationMinutes int    // used by OccupancyOverlap only
	ExcludeID       *int64 // appointment being edited
	Mode            OccupancyMode
}
