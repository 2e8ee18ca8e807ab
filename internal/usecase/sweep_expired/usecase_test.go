package sweep_expired

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	bookingRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/booking"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindExpiredPending(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CancelFrom(ctx context.Context, id int64, expected domain.BookingStatus, reason string) error {
	args := m.Called(ctx, id, expected, reason)
	return args.Error(0)
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func TestExecute_CancelsExpiredBookings(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-30 * time.Minute)

	expired := []*domain.Booking{
		{ID: 1, Status: domain.StatusPendingPayment, CreatedAt: now.Add(-45 * time.Minute)},
		{ID: 2, Status: domain.StatusPendingPayment, CreatedAt: now.Add(-60 * time.Minute)},
	}
	mockBookings.On("FindExpiredPending", mock.Anything, cutoff).Return(expired, nil)
	mockBookings.On("CancelFrom", mock.Anything, int64(1), domain.StatusPendingPayment, CancellationReason).Return(nil)
	mockBookings.On("CancelFrom", mock.Anything, int64(2), domain.StatusPendingPayment, CancellationReason).Return(nil)

	uc := NewUseCase(mockBookings, 30, nil, &noopLogger{})

	report, err := uc.Execute(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 2, report.Cancelled)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Failed)
}

func TestExecute_SkipsBookingPaidBeforeSweep(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	// Бронирование было выбрано как просроченное, но клиент успел оплатить:
	// guarded-переход из pending_payment не проходит
	expired := []*domain.Booking{
		{ID: 1, Status: domain.StatusPendingPayment},
	}
	mockBookings.On("FindExpiredPending", mock.Anything, mock.Anything).Return(expired, nil)
	mockBookings.On("CancelFrom", mock.Anything, int64(1), domain.StatusPendingPayment, CancellationReason).
		Return(bookingRepo.ErrStatusConflict)

	uc := NewUseCase(mockBookings, 30, nil, &noopLogger{})

	report, err := uc.Execute(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 0, report.Cancelled)
	assert.Equal(t, 1, report.Skipped)
}

func TestExecute_OneFailureDoesNotStopTheRest(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	expired := []*domain.Booking{
		{ID: 1, Status: domain.StatusPendingPayment},
		{ID: 2, Status: domain.StatusPendingPayment},
		{ID: 3, Status: domain.StatusPendingPayment},
	}
	mockBookings.On("FindExpiredPending", mock.Anything, mock.Anything).Return(expired, nil)
	mockBookings.On("CancelFrom", mock.Anything, int64(1), domain.StatusPendingPayment, CancellationReason).Return(nil)
	mockBookings.On("CancelFrom", mock.Anything, int64(2), domain.StatusPendingPayment, CancellationReason).
		Return(errors.New("connection reset"))
	mockBookings.On("CancelFrom", mock.Anything, int64(3), domain.StatusPendingPayment, CancellationReason).Return(nil)

	uc := NewUseCase(mockBookings, 30, nil, &noopLogger{})

	report, err := uc.Execute(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 2, report.Cancelled)
	assert.Equal(t, 1, report.Failed)
	mockBookings.AssertCalled(t, "CancelFrom", mock.Anything, int64(3), domain.StatusPendingPayment, CancellationReason)
}

func TestExecute_EmptySweep(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	mockBookings.On("FindExpiredPending", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

	uc := NewUseCase(mockBookings, 30, nil, &noopLogger{})

	report, err := uc.Execute(context.Background(), time.Now())

	assert.NoError(t, err)
	assert.Equal(t, 0, report.Scanned)
	mockBookings.AssertNotCalled(t, "CancelFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_FindFailure(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	mockBookings.On("FindExpiredPending", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	uc := NewUseCase(mockBookings, 30, nil, &noopLogger{})

	_, err := uc.Execute(context.Background(), time.Now())

	assert.ErrorIs(t, err, ErrInternal)
}
