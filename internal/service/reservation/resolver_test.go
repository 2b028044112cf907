package reservation

import (
	"context"
	"io"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	storeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Monday 2026-10-19 08:00 UTC
var now = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

var tuesday = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

type fixture struct {
	stores       *mockStoreRepo
	catalog      *mockCatalog
	schedules    *mockScheduleRepo
	appointments *mockAppointmentRepo
	resolver     *Resolver
	store        *domain.Store
	service      *domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, err := logger.NewWithWriter(io.Discard, "error")
	require.NoError(t, err)

	f := &fixture{
		stores:       &mockStoreRepo{},
		catalog:      &mockCatalog{},
		schedules:    &mockScheduleRepo{},
		appointments: &mockAppointmentRepo{},
		store: &domain.Store{
			ID:       1,
			Timezone: "UTC",
			Capacity: domain.CapacityConfig{AllowMultiple: true, MaxPerSlot: 2},
		},
		service: &domain.Service{
			ID:                10,
			StoreID:           1,
			Name:              "Haircut",
			DurationMinutes:   30,
			AvailableWeekdays: domain.AllWeekdays,
			Active:            true,
		},
	}

	hours, err := domain.NewContinuousHours("09:00", "18:00")
	require.NoError(t, err)
	week := domain.WeeklySchedule{StoreID: 1}
	for d := time.Sunday; d <= time.Saturday; d++ {
		week.Days = append(week.Days, domain.DaySchedule{Weekday: d, Enabled: true, Hours: hours})
	}

	f.stores.On("GetByID", mock.Anything, int64(1)).Return(f.store, nil).Maybe()
	f.catalog.On("GetService", mock.Anything, int64(1), int64(10)).Return(f.service, nil).Maybe()
	f.schedules.On("GetWeeklySchedule", mock.Anything, int64(1)).Return(week, nil).Maybe()

	f.resolver = NewResolver(f.stores, f.catalog, f.schedules, f.appointments, log).
		WithTimeProvider(fixedClock{now: now})
	return f
}

func txContext() context.Context {
	return dbmetrics.WithTx(context.Background(), stubTx{})
}

func request(at types.TimeString) *ReserveRequest {
	return &ReserveRequest{StoreID: 1, ServiceID: 10, Date: tuesday, Time: at}
}

func atTime(at types.TimeString) interface{} {
	return mock.MatchedBy(func(q domain.SlotQuery) bool { return q.Time == at })
}

func TestResolver_Reserve_CapacityPerSlot(t *testing.T) {
	f := newFixture(t)
	f.appointments.On("LockStoreDay", mock.Anything, int64(1), tuesday).Return(nil)
	f.appointments.On("CountAtSlot", mock.Anything, atTime("10:00")).Return(2, nil)
	f.appointments.On("CountAtSlot", mock.Anything, atTime("10:30")).Return(1, nil)

	_, err := f.resolver.Reserve(txContext(), request("10:00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSlotConflict))
	assert.True(t, errors.Is(err, domain.ErrCapacityExceeded))

	res, err := f.resolver.Reserve(txContext(), request("10:30"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Occupied)
	assert.Equal(t, 2, res.TotalSpots)
	assert.Equal(t, 1, res.AvailableSpots())
	assert.Equal(t, 30, res.DurationMinutes)
	assert.Same(t, f.service, res.Service)

	f.appointments.AssertNumberOfCalls(t, "LockStoreDay", 2)
}

func TestResolver_Reserve_LocksBeforeCounting(t *testing.T) {
	f := newFixture(t)

	var order []string
	f.appointments.On("LockStoreDay", mock.Anything, int64(1), tuesday).
		Run(func(mock.Arguments) { order = append(order, "lock") }).Return(nil)
	f.appointments.On("CountAtSlot", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { order = append(order, "count") }).Return(0, nil)

	_, err := f.resolver.Reserve(txContext(), request("09:00"))
	require.NoError(t, err)
	assert.Equal(t, []string{"lock", "count"}, order)
}

func TestResolver_Reserve_PassesExclusionAndMode(t *testing.T) {
	f := newFixture(t)
	f.store.Capacity.OccupancyMode = domain.OccupancyOverlap

	f.appointments.On("LockStoreDay", mock.Anything, int64(1), tuesday).Return(nil)
	f.appointments.On("CountAtSlot", mock.Anything, mock.MatchedBy(func(q domain.SlotQuery) bool {
		return q.ExcludeID != nil && *q.ExcludeID == 7 &&
			q.Mode == domain.OccupancyOverlap &&
			q.DurationMinutes == 30 &&
			domain.SameDate(q.Date, tuesday)
	})).Return(0, nil)

	req := request("11:00")
	req.ExcludeAppointmentID = ptr.Ptr(int64(7))

	_, err := f.resolver.Reserve(txContext(), req)
	require.NoError(t, err)
	f.appointments.AssertExpectations(t)
}

func TestResolver_Reserve_OutsideTransaction(t *testing.T) {
	f := newFixture(t)

	_, err := f.resolver.Reserve(context.Background(), request("10:00"))

	assert.True(t, errors.Is(err, ErrNotInTransaction))
	f.appointments.AssertNotCalled(t, "LockStoreDay", mock.Anything, mock.Anything, mock.Anything)
	f.appointments.AssertNotCalled(t, "CountAtSlot", mock.Anything, mock.Anything)
}

func TestResolver_Reserve_LockFailure(t *testing.T) {
	f := newFixture(t)
	f.appointments.On("LockStoreDay", mock.Anything, int64(1), tuesday).Return(errors.New("connection reset"))

	_, err := f.resolver.Reserve(txContext(), request("10:00"))

	assert.True(t, errors.Is(err, ErrInternal))
	f.appointments.AssertNotCalled(t, "CountAtSlot", mock.Anything, mock.Anything)
}

func TestResolver_Check_DoesNotLock(t *testing.T) {
	f := newFixture(t)
	f.appointments.On("CountAtSlot", mock.Anything, atTime("10:00")).Return(0, nil)

	res, err := f.resolver.Check(context.Background(), request("10:00"))

	require.NoError(t, err)
	assert.Equal(t, 2, res.AvailableSpots())
	f.appointments.AssertNotCalled(t, "LockStoreDay", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_Check_SingleCapacityIgnoresMaxPerSlot(t *testing.T) {
	f := newFixture(t)
	f.store.Capacity = domain.CapacityConfig{AllowMultiple: false, MaxPerSlot: 5}
	f.appointments.On("CountAtSlot", mock.Anything, mock.Anything).Return(1, nil)

	_, err := f.resolver.Check(context.Background(), request("10:00"))

	assert.True(t, errors.Is(err, ErrSlotConflict))
}

func TestResolver_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(f *fixture, req *ReserveRequest)
		wantErr  error
		wantKind error
	}{
		{
			name:     "missing store id",
			prepare:  func(_ *fixture, req *ReserveRequest) { req.StoreID = 0 },
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "malformed time",
			prepare:  func(_ *fixture, req *ReserveRequest) { req.Time = "9:00" },
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "non-positive exclusion",
			prepare:  func(_ *fixture, req *ReserveRequest) { req.ExcludeAppointmentID = ptr.Ptr(int64(0)) },
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "past date",
			prepare:  func(_ *fixture, req *ReserveRequest) { req.Date = now.AddDate(0, 0, -1) },
			wantErr:  ErrDateInPast,
			wantKind: domain.ErrValidation,
		},
		{
			name: "slot already started today",
			prepare: func(_ *fixture, req *ReserveRequest) {
				req.Date = domain.DateOnly(now)
				req.Time = "07:30"
			},
			wantErr:  ErrDateInPast,
			wantKind: domain.ErrValidation,
		},
		{
			name: "store timezone ahead of utc",
			prepare: func(f *fixture, req *ReserveRequest) {
				// 08:00 UTC is 11:00 in Moscow
				f.store.Timezone = "Europe/Moscow"
				req.Date = domain.DateOnly(now)
				req.Time = "10:30"
			},
			wantErr:  ErrDateInPast,
			wantKind: domain.ErrValidation,
		},
		{
			name: "inside booking notice",
			prepare: func(f *fixture, req *ReserveRequest) {
				f.store.MinBookingNoticeMinutes = 120
				req.Date = domain.DateOnly(now)
				req.Time = "09:30"
			},
			wantErr:  ErrTooLateToBook,
			wantKind: domain.ErrValidation,
		},
		{
			name: "beyond advance window",
			prepare: func(f *fixture, req *ReserveRequest) {
				f.store.AdvanceBookingDays = 7
				req.Date = time.Date(2026, 10, 27, 0, 0, 0, 0, time.UTC)
			},
			wantErr:  ErrDateTooFarInFuture,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "after closing",
			prepare:  func(_ *fixture, req *ReserveRequest) { req.Time = "17:45" },
			wantErr:  ErrScheduleClosed,
			wantKind: domain.ErrScheduleClosed,
		},
		{
			name:     "before opening",
			prepare:  func(_ *fixture, req *ReserveRequest) { req.Time = "08:30" },
			wantErr:  ErrScheduleClosed,
			wantKind: domain.ErrScheduleClosed,
		},
		{
			name:     "between slot starts",
			prepare:  func(_ *fixture, req *ReserveRequest) { req.Time = "10:10" },
			wantErr:  ErrOffGrid,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "inactive service",
			prepare:  func(f *fixture, _ *ReserveRequest) { f.service.Active = false },
			wantErr:  ErrServiceUnavailable,
			wantKind: domain.ErrServiceUnavailable,
		},
		{
			name: "service not offered on tuesday",
			prepare: func(f *fixture, _ *ReserveRequest) {
				f.service.AvailableWeekdays = domain.NewWeekdaySet(time.Saturday)
			},
			wantErr:  ErrServiceUnavailable,
			wantKind: domain.ErrServiceUnavailable,
		},
		{
			name:     "unknown store",
			prepare:  func(_ *fixture, req *ReserveRequest) { req.StoreID = 2 },
			wantErr:  ErrStoreNotFound,
			wantKind: domain.ErrNotFound,
		},
		{
			name:     "unknown service",
			prepare:  func(_ *fixture, req *ReserveRequest) { req.ServiceID = 11 },
			wantErr:  ErrServiceNotFound,
			wantKind: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.stores.On("GetByID", mock.Anything, int64(2)).Return(nil, storeRepo.ErrStoreNotFound).Maybe()
			f.catalog.On("GetService", mock.Anything, int64(1), int64(11)).Return(nil, catalogRepo.ErrServiceNotFound).Maybe()

			req := request("10:00")
			tt.prepare(f, req)

			_, err := f.resolver.Reserve(txContext(), req)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)
			f.appointments.AssertNotCalled(t, "LockStoreDay", mock.Anything, mock.Anything, mock.Anything)
			f.appointments.AssertNotCalled(t, "CountAtSlot", mock.Anything, mock.Anything)
		})
	}
}

func TestResolver_RepositoryFailure(t *testing.T) {
	f := newFixture(t)
	f.stores.ExpectedCalls = nil
	f.stores.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("timeout"))

	_, err := f.resolver.Check(context.Background(), request("10:00"))

	assert.True(t, errors.Is(err, ErrInternal))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeReserved, Outcome(nil))
	assert.Equal(t, OutcomeConflict, Outcome(ErrSlotConflict))
	assert.Equal(t, OutcomeClosed, Outcome(ErrScheduleClosed))
	assert.Equal(t, OutcomeUnavailable, Outcome(ErrServiceUnavailable))
	assert.Equal(t, OutcomeInvalid, Outcome(ErrOffGrid))
	assert.Equal(t, OutcomeNotFound, Outcome(ErrStoreNotFound))
	assert.Equal(t, OutcomeError, Outcome(ErrInternal))
}
