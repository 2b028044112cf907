package get_available_slots

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	storeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Monday 2026-10-19 08:00 UTC
var now = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

var (
	monday    = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	tuesday   = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	stores       *mockStoreRepo
	catalog      *mockCatalog
	schedules    *mockScheduleRepo
	appointments *mockAppointmentRepo
	metrics      *countingMetrics
	store        *domain.Store
	service      *domain.Service
	uc           *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, err := logger.NewWithWriter(io.Discard, "error")
	require.NoError(t, err)

	hours, err := domain.NewContinuousHours("09:00", "12:00")
	require.NoError(t, err)
	week := domain.WeeklySchedule{StoreID: 1}
	for _, d := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday} {
		week.Days = append(week.Days, domain.DaySchedule{Weekday: d, Enabled: true, Hours: hours})
	}

	f := &fixture{
		stores:       &mockStoreRepo{},
		catalog:      &mockCatalog{},
		schedules:    &mockScheduleRepo{},
		appointments: &mockAppointmentRepo{},
		metrics:      &countingMetrics{},
		store:        &domain.Store{ID: 1, Timezone: "UTC", Capacity: domain.DefaultCapacity()},
		service: &domain.Service{
			ID:                10,
			StoreID:           1,
			DurationMinutes:   60,
			AvailableWeekdays: domain.AllWeekdays,
			Active:            true,
		},
	}

	f.stores.On("GetByID", mock.Anything, int64(1)).Return(f.store, nil).Maybe()
	f.stores.On("GetByID", mock.Anything, int64(2)).Return(nil, storeRepo.ErrStoreNotFound).Maybe()
	f.catalog.On("GetService", mock.Anything, int64(1), int64(10)).Return(f.service, nil).Maybe()
	f.schedules.On("GetWeeklySchedule", mock.Anything, int64(1)).Return(week, nil).Maybe()

	f.uc = NewUseCase(f.stores, f.catalog, f.schedules, f.appointments, f.metrics, log).
		WithTimeProvider(fixedClock{now: now})
	return f
}

func startTimes(day Day) []types.TimeString {
	result := make([]types.TimeString, len(day.Slots))
	for i, s := range day.Slots {
		result[i] = s.StartTime
	}
	return result
}

func booked(id int64, date time.Time, at types.TimeString) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		StoreID:         1,
		Date:            date,
		Time:            at,
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func TestUseCase_SingleDay(t *testing.T) {
	f := newFixture(t)
	f.appointments.On("ListActive", mock.Anything, int64(1), tuesday, tuesday).
		Return([]*domain.Appointment{booked(1, tuesday, "10:00")}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{StoreID: 1, ServiceID: 10, From: tuesday, To: tuesday})

	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, startTimes(resp.Days[0]))
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 2, f.metrics.listed)
}

func TestUseCase_ExcludedAppointmentFreesItsSlot(t *testing.T) {
	f := newFixture(t)
	f.appointments.On("ListActive", mock.Anything, int64(1), tuesday, tuesday).
		Return([]*domain.Appointment{booked(5, tuesday, "10:00")}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		StoreID: 1, ServiceID: 10, From: tuesday, To: tuesday, ExcludeAppointmentID: ptr.Ptr(int64(5)),
	})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, startTimes(resp.Days[0]))
}

func TestUseCase_TodayRespectsNotice(t *testing.T) {
	f := newFixture(t)
	f.store.MinBookingNoticeMinutes = 90
	f.appointments.On("ListActive", mock.Anything, int64(1), monday, monday).Return([]*domain.Appointment{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{StoreID: 1, ServiceID: 10, From: monday, To: monday})

	require.NoError(t, err)
	// earliest start is 09:30
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, startTimes(resp.Days[0]))
}

func TestUseCase_Range(t *testing.T) {
	f := newFixture(t)
	f.service.AvailableWeekdays = domain.NewWeekdaySet(time.Tuesday)
	f.appointments.On("ListActive", mock.Anything, int64(1), monday, wednesday).
		Return([]*domain.Appointment{booked(1, tuesday, "09:00"), booked(2, wednesday, "09:00")}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{StoreID: 1, ServiceID: 10, From: monday, To: wednesday})

	require.NoError(t, err)
	require.Len(t, resp.Days, 3)
	assert.Empty(t, resp.Days[0].Slots)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, startTimes(resp.Days[1]))
	assert.Empty(t, resp.Days[2].Slots)
	assert.True(t, domain.SameDate(resp.Days[2].Date, wednesday))
	assert.Equal(t, 2, resp.TotalSlots())
}

func TestUseCase_ClosedDayIsNotAnError(t *testing.T) {
	f := newFixture(t)
	sunday := time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)
	f.appointments.On("ListActive", mock.Anything, int64(1), sunday, sunday).Return([]*domain.Appointment{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{StoreID: 1, ServiceID: 10, From: sunday, To: sunday})

	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.NotNil(t, resp.Days[0].Slots)
	assert.Empty(t, resp.Days[0].Slots)
}

func TestUseCase_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		req      *Request
		prepare  func(f *fixture)
		wantErr  error
		wantKind error
	}{
		{
			name:     "missing service",
			req:      &Request{StoreID: 1, From: tuesday, To: tuesday},
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "inverted range",
			req:      &Request{StoreID: 1, ServiceID: 10, From: wednesday, To: tuesday},
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "range too long",
			req:      &Request{StoreID: 1, ServiceID: 10, From: tuesday, To: tuesday.AddDate(0, 0, domain.MaxRangeDays)},
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "past date",
			req:      &Request{StoreID: 1, ServiceID: 10, From: monday.AddDate(0, 0, -1), To: tuesday},
			wantErr:  ErrDateInPast,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "beyond advance window",
			req:      &Request{StoreID: 1, ServiceID: 10, From: tuesday, To: monday.AddDate(0, 0, 8)},
			prepare:  func(f *fixture) { f.store.AdvanceBookingDays = 7 },
			wantErr:  ErrDateTooFarInFuture,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "unknown store",
			req:      &Request{StoreID: 2, ServiceID: 10, From: tuesday, To: tuesday},
			wantErr:  ErrStoreNotFound,
			wantKind: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.prepare != nil {
				tt.prepare(f)
			}

			resp, err := f.uc.Execute(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)
			f.appointments.AssertNotCalled(t, "ListActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_RepositoryFailure(t *testing.T) {
	f := newFixture(t)
	f.appointments.On("ListActive", mock.Anything, int64(1), tuesday, tuesday).Return(nil, errors.New("timeout"))

	_, err := f.uc.Execute(context.Background(), &Request{StoreID: 1, ServiceID: 10, From: tuesday, To: tuesday})

	assert.True(t, errors.Is(err, ErrInternal))
	assert.Zero(t, f.metrics.listed)
}
