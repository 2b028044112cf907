package reservation

import (
	"context"
	"database/sql"
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

func (m *mockAppointmentRepo) LockStoreDay(ctx context.Context, storeID int64, date time.Time) error {
	return m.Called(ctx, storeID, date).Error(0)
}

func (m *mockAppointmentRepo) CountAtSlot(ctx context.Context, q domain.SlotQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// stubTx only marks the context as transactional
type stubTx struct{}

func (stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }
