package appointments

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	storeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const owner int64 = 100

var tuesday = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

type fixture struct {
	appointments *mockAppointmentRepo
	stores       *mockStoreRepo
	notifier     *mockNotifier
	tx           *passThroughTx
	service      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, err := logger.NewWithWriter(io.Discard, "error")
	require.NoError(t, err)

	f := &fixture{
		appointments: &mockAppointmentRepo{},
		stores:       &mockStoreRepo{},
		notifier:     &mockNotifier{},
		tx:           &passThroughTx{},
	}
	f.stores.On("GetByID", mock.Anything, int64(1)).Return(&domain.Store{ID: 1, OwnerUserID: owner}, nil).Maybe()
	f.notifier.On("NotifyCancelled", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	f.service = NewService(f.appointments, f.stores, f.notifier, f.tx, log)
	return f
}

func appointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              5,
		StoreID:         1,
		ServiceID:       10,
		PublicToken:     "token-5",
		CustomerName:    "Ann",
		CustomerPhone:   "+15550001",
		Date:            tuesday,
		Time:            "10:00",
		DurationMinutes: 30,
		Status:          status,
	}
}

func TestService_GetByID(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("GetByID", mock.Anything, int64(5)).Return(appointment(domain.StatusPending), nil)

		got, err := f.service.GetByID(context.Background(), 5, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.ID)
		assert.Equal(t, "pending", got.Status)
	})

	t.Run("not owner", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("GetByID", mock.Anything, int64(5)).Return(appointment(domain.StatusPending), nil)

		_, err := f.service.GetByID(context.Background(), 5, 7)
		assert.True(t, errors.Is(err, ErrAccessDenied))
		assert.True(t, errors.Is(err, domain.ErrAccessDenied))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("GetByID", mock.Anything, int64(5)).Return(nil, appointmentRepo.ErrAppointmentNotFound)

		_, err := f.service.GetByID(context.Background(), 5, owner)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("GetByID", mock.Anything, int64(5)).Return(nil, errors.New("connection reset"))

		_, err := f.service.GetByID(context.Background(), 5, owner)
		assert.True(t, errors.Is(err, ErrInternal))
	})
}

func TestService_GetByToken(t *testing.T) {
	f := newFixture(t)
	f.appointments.On("GetByPublicToken", mock.Anything, "token-5").Return(appointment(domain.StatusConfirmed), nil)
	f.appointments.On("GetByPublicToken", mock.Anything, "missing").Return(nil, appointmentRepo.ErrAppointmentNotFound)

	got, err := f.service.GetByToken(context.Background(), "token-5")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)

	_, err = f.service.GetByToken(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrAppointmentNotFound))
}

func TestService_List(t *testing.T) {
	t.Run("default filter hides cancelled", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("List", mock.Anything, mock.MatchedBy(func(filter domain.AppointmentsFilter) bool {
			return filter.StoreID == 1 && !filter.IncludeCancelled && filter.Status == nil &&
				filter.From != nil && filter.From.Equal(tuesday)
		})).Return([]*domain.Appointment{appointment(domain.StatusPending), appointment(domain.StatusConfirmed)}, nil)

		got, err := f.service.List(context.Background(), &models.ListRequest{
			UserID:  owner,
			StoreID: 1,
			From:    ptr.Ptr(tuesday.Add(15 * time.Hour)),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, got.Total)
		assert.Len(t, got.Appointments, 2)
	})

	t.Run("cancelled status includes cancelled", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("List", mock.Anything, mock.MatchedBy(func(filter domain.AppointmentsFilter) bool {
			return filter.IncludeCancelled && filter.Status != nil && *filter.Status == domain.StatusCancelled
		})).Return([]*domain.Appointment{}, nil)

		got, err := f.service.List(context.Background(), &models.ListRequest{
			UserID:  owner,
			StoreID: 1,
			Status:  ptr.Ptr("cancelled"),
		})
		require.NoError(t, err)
		assert.Zero(t, got.Total)
		assert.NotNil(t, got.Appointments)
	})

	t.Run("invalid period", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.List(context.Background(), &models.ListRequest{
			UserID:  owner,
			StoreID: 1,
			From:    ptr.Ptr(tuesday.AddDate(0, 0, 1)),
			To:      ptr.Ptr(tuesday),
		})
		assert.True(t, errors.Is(err, domain.ErrValidation))
		f.appointments.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.List(context.Background(), &models.ListRequest{
			UserID:  owner,
			StoreID: 1,
			Status:  ptr.Ptr("done"),
		})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("unknown store", func(t *testing.T) {
		f := newFixture(t)
		f.stores.On("GetByID", mock.Anything, int64(2)).Return(nil, storeRepo.ErrStoreNotFound)

		_, err := f.service.List(context.Background(), &models.ListRequest{UserID: owner, StoreID: 2})
		assert.True(t, errors.Is(err, ErrStoreNotFound))
	})

	t.Run("not owner", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.List(context.Background(), &models.ListRequest{UserID: 7, StoreID: 1})
		assert.True(t, errors.Is(err, ErrAccessDenied))
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("confirm pending", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("GetByID", mock.Anything, int64(5)).Return(appointment(domain.StatusPending), nil)
		f.appointments.On("UpdateStatus", mock.Anything, int64(5), domain.StatusConfirmed).Return(nil)

		got, err := f.service.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: owner, Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", got.Status)
		f.notifier.AssertNotCalled(t, "NotifyCancelled", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancel confirmed notifies", func(t *testing.T) {
		f := newFixture(t)
		reason := ptr.Ptr("store closed")
		f.appointments.On("GetByID", mock.Anything, int64(5)).Return(appointment(domain.StatusConfirmed), nil)
		f.appointments.On("Cancel", mock.Anything, int64(5), reason).Return(nil)

		got, err := f.service.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
			UserID: owner,
			Status: "cancelled",
			Reason: reason,
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", got.Status)
		assert.Equal(t, reason, got.CancellationReason)
		f.notifier.AssertCalled(t, "NotifyCancelled", mock.Anything, mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
			return a.ID == 5 && a.Status == domain.StatusCancelled
		}))
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("GetByID", mock.Anything, int64(5)).Return(appointment(domain.StatusCancelled), nil)

		_, err := f.service.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: owner, Status: "confirmed"})
		assert.True(t, errors.Is(err, ErrInvalidTransition))
		assert.True(t, errors.Is(err, domain.ErrConflict))
		f.appointments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("confirmed cannot go back to pending", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("GetByID", mock.Anything, int64(5)).Return(appointment(domain.StatusConfirmed), nil)

		_, err := f.service.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: owner, Status: "pending"})
		assert.True(t, errors.Is(err, ErrInvalidTransition))
	})

	t.Run("not owner", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("GetByID", mock.Anything, int64(5)).Return(appointment(domain.StatusPending), nil)

		_, err := f.service.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 7, Status: "confirmed"})
		assert.True(t, errors.Is(err, ErrAccessDenied))
		f.appointments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: owner, Status: "done"})
		assert.True(t, errors.Is(err, domain.ErrValidation))
		f.appointments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("reason too long", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
			UserID: owner,
			Status: "cancelled",
			Reason: ptr.Ptr(strings.Repeat("x", domain.MaxCancellationReasonLength+1)),
		})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("commit failure skips notification", func(t *testing.T) {
		f := newFixture(t)
		f.tx.commitErr = errors.New("commit failed")
		f.appointments.On("GetByID", mock.Anything, int64(5)).Return(appointment(domain.StatusPending), nil)
		f.appointments.On("Cancel", mock.Anything, int64(5), (*string)(nil)).Return(nil)

		_, err := f.service.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: owner, Status: "cancelled"})
		require.Error(t, err)
		f.notifier.AssertNotCalled(t, "NotifyCancelled", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_CancelByToken(t *testing.T) {
	t.Run("cancels", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("GetByPublicToken", mock.Anything, "token-5").Return(appointment(domain.StatusPending), nil)
		f.appointments.On("Cancel", mock.Anything, int64(5), (*string)(nil)).Return(nil)

		got, err := f.service.CancelByToken(context.Background(), "token-5", nil)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", got.Status)
		f.notifier.AssertNumberOfCalls(t, "NotifyCancelled", 1)
	})

	t.Run("already cancelled", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("GetByPublicToken", mock.Anything, "token-5").Return(appointment(domain.StatusCancelled), nil)

		_, err := f.service.CancelByToken(context.Background(), "token-5", nil)
		assert.True(t, errors.Is(err, ErrInvalidTransition))
		f.appointments.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newFixture(t)
		f.appointments.On("GetByPublicToken", mock.Anything, "missing").Return(nil, appointmentRepo.ErrAppointmentNotFound)

		_, err := f.service.CancelByToken(context.Background(), "missing", nil)
		assert.True(t, errors.Is(err, ErrAppointmentNotFound))
	})

	t.Run("notification failure is ignored", func(t *testing.T) {
		f := newFixture(t)
		f.notifier = &mockNotifier{}
		f.notifier.On("NotifyCancelled", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("twilio down"))
		log, _ := logger.NewWithWriter(io.Discard, "error")
		f.service = NewService(f.appointments, f.stores, f.notifier, f.tx, log)

		f.appointments.On("GetByPublicToken", mock.Anything, "token-5").Return(appointment(domain.StatusConfirmed), nil)
		f.appointments.On("Cancel", mock.Anything, int64(5), (*string)(nil)).Return(nil)

		_, err := f.service.CancelByToken(context.Background(), "token-5", nil)
		assert.NoError(t, err)
	})
}
