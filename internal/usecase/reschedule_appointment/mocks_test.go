package reschedule_appointment

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/reservation"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type mockReserver struct {
	mock.Mock
}

func (m *mockReserver) Reserve(ctx context.Context, req *reservation.ReserveRequest) (*reservation.Reservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) GetByPublicToken(ctx context.Context, token string) (*domain.Appointment, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) UpdateSlot(ctx context.Context, id int64, date time.Time, at types.TimeString, durationMinutes int) error {
	return m.Called(ctx, id, date, at, durationMinutes).Error(0)
}

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

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyRescheduled(ctx context.Context, store *domain.Store, a *domain.Appointment) error {
	return m.Called(ctx, store, a).Error(0)
}

type passThroughTx struct {
	commitErr error
}

func (p *passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return p.commitErr
}

type outcomes struct {
	got []string
}

func (o *outcomes) IncReservation(_, outcome string) {
	o.got = append(o.got, outcome)
}
