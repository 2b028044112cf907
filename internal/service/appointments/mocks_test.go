package appointments

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

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

func (m *mockAppointmentRepo) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockAppointmentRepo) Cancel(ctx context.Context, id int64, reason *string) error {
	return m.Called(ctx, id, reason).Error(0)
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

func (m *mockNotifier) NotifyCancelled(ctx context.Context, store *domain.Store, a *domain.Appointment) error {
	return m.Called(ctx, store, a).Error(0)
}

type passThroughTx struct {
	commitErr error
}

func (p *passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return p.commitErr
}
