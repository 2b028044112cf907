package get_available_slots

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type mockStoreRepo struct {
	mock.Mock
}

func (m *mockStoreRepo) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetService(ctx context.Context, storeID, serviceID int64) (*domain.Service, error) {
	args := m.Called(ctx, storeID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) GetWeeklySchedule(ctx context.Context, storeID int64) (domain.WeeklySchedule, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(domain.WeeklySchedule), args.Error(1)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) ListActive(ctx context.Context, storeID int64, from, to time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, storeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

type countingMetrics struct {
	listed int
}

func (c *countingMetrics) AddSlotsListed(count int) {
	c.listed += count
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
