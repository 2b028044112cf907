package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func date(s string) time.Time {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewSplitHours(t *testing.T) {
	tests := []struct {
		name    string
		bounds  [4]types.TimeString
		wantErr bool
	}{
		{name: "valid with break", bounds: [4]types.TimeString{"08:00", "13:00", "16:00", "20:00"}},
		{name: "touching halves", bounds: [4]types.TimeString{"08:00", "13:00", "13:00", "20:00"}},
		{name: "overlapping halves", bounds: [4]types.TimeString{"08:00", "14:00", "13:00", "20:00"}, wantErr: true},
		{name: "empty morning", bounds: [4]types.TimeString{"08:00", "08:00", "13:00", "20:00"}, wantErr: true},
		{name: "malformed", bounds: [4]types.TimeString{"8:00", "13:00", "16:00", "20:00"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewSplitHours(tt.bounds[0], tt.bounds[1], tt.bounds[2], tt.bounds[3])
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ModeSplit, h.Mode())
			assert.Len(t, h.Intervals(), 2)
		})
	}
}

func TestNewContinuousHours(t *testing.T) {
	h, err := NewContinuousHours("09:00", "13:00")
	require.NoError(t, err)
	assert.Equal(t, []Interval{{Start: "09:00", End: "13:00"}}, h.Intervals())

	_, err = NewContinuousHours("13:00", "09:00")
	assert.True(t, errors.Is(err, ErrInvalidWorkingHours))
}

func TestInterval_Contains(t *testing.T) {
	i := Interval{Start: "08:00", End: "13:00"}

	assert.True(t, i.Contains("12:00", 60))
	assert.False(t, i.Contains("12:30", 60))
	assert.True(t, i.Contains("08:00", 300))
	assert.False(t, i.Contains("07:30", 30))
	assert.False(t, i.Contains("09:00", 0))
}

func TestService_CheckBookableOn(t *testing.T) {
	base := Service{
		DurationMinutes:   30,
		AvailableWeekdays: NewWeekdaySet(time.Saturday, time.Sunday),
		ValidFrom:         ptr.Ptr(date("2026-03-01")),
		ValidUntil:        ptr.Ptr(date("2026-03-31")),
		Active:            true,
	}

	tests := []struct {
		name    string
		mutate  func(s *Service)
		date    string
		wantErr error
	}{
		{name: "saturday inside window", date: "2026-03-07"},
		{name: "first day inclusive", date: "2026-03-01"},
		{name: "last day inclusive", date: "2026-03-31", mutate: func(s *Service) { s.AvailableWeekdays = AllWeekdays }},
		{name: "tuesday not offered", date: "2026-03-10", wantErr: ErrServiceWeekday},
		{name: "before window", date: "2026-02-28", wantErr: ErrServiceOutOfWindow},
		{name: "after window", date: "2026-04-04", wantErr: ErrServiceOutOfWindow},
		{name: "inactive", date: "2026-03-07", mutate: func(s *Service) { s.Active = false }, wantErr: ErrServiceInactive},
		{name: "unbounded window", date: "2030-01-05", mutate: func(s *Service) { s.ValidFrom, s.ValidUntil = nil, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			if tt.mutate != nil {
				tt.mutate(&s)
			}

			err := s.CheckBookableOn(date(tt.date))

			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.True(t, s.IsBookableOn(date(tt.date)))
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.True(t, errors.Is(err, ErrServiceUnavailable))
			assert.False(t, s.IsBookableOn(date(tt.date)))
		})
	}
}

func TestWeekdaySet(t *testing.T) {
	s := NewWeekdaySet(time.Monday, time.Friday)

	assert.True(t, s.Has(time.Monday))
	assert.False(t, s.Has(time.Tuesday))
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, s.Days())
	assert.False(t, s.IsEmpty())
	assert.True(t, WeekdaySet(0).IsEmpty())
	assert.Len(t, AllWeekdays.Days(), 7)
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			a := Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}

func TestCapacityConfig_EffectiveCap(t *testing.T) {
	assert.Equal(t, 1, CapacityConfig{AllowMultiple: false, MaxPerSlot: 5}.EffectiveCap())
	assert.Equal(t, 5, CapacityConfig{AllowMultiple: true, MaxPerSlot: 5}.EffectiveCap())
	assert.Equal(t, 1, CapacityConfig{AllowMultiple: true, MaxPerSlot: 0}.EffectiveCap())
	assert.Equal(t, OccupancyExactStart, CapacityConfig{}.Mode())
}

func TestStore_Location(t *testing.T) {
	s := Store{Timezone: "Europe/Moscow"}
	assert.Equal(t, "Europe/Moscow", s.Location().String())

	s.Timezone = "Mars/Olympus"
	assert.Equal(t, time.UTC, s.Location())
}
