package create_appointment

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/reservation"
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

func (m *mockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

type mockIdempotency struct {
	mock.Mock
}

func (m *mockIdempotency) Acquire(ctx context.Context, storeID int64, key string) (int64, bool, error) {
	args := m.Called(ctx, storeID, key)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *mockIdempotency) Complete(ctx context.Context, storeID int64, key string, appointmentID int64) error {
	return m.Called(ctx, storeID, key, appointmentID).Error(0)
}

func (m *mockIdempotency) Release(ctx context.Context, storeID int64, key string) error {
	return m.Called(ctx, storeID, key).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyCreated(ctx context.Context, store *domain.Store, a *domain.Appointment) error {
	return m.Called(ctx, store, a).Error(0)
}

// passThroughTx выполняет fn без БД; commitErr имитирует ошибку коммита
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
