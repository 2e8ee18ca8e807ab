package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	bookingRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/booking"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/ptr"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByCenterWithFilter(ctx context.Context, filter domain.CenterBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Reschedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString, next domain.BookingStatus) error {
	args := m.Called(ctx, id, date, startTime, next)
	return args.Error(0)
}

type MockCenterRepository struct {
	mock.Mock
}

func (m *MockCenterRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceCenter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceCenter), args.Error(1)
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:            15,
		CenterID:      1,
		BookingDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		Status:        domain.StatusUpdateRequested,
		RequestedDate: ptr.Ptr(time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC)),
		RequestedTime: ptr.Ptr(types.TimeString("14:00")),
	}
}

func testCenter() *domain.ServiceCenter {
	return &domain.ServiceCenter{
		ID:                    1,
		OpenTime:              "09:00",
		CloseTime:             "18:00",
		SlotDurationMinutes:   30,
		MaxConcurrentBookings: 1,
	}
}

func TestExecute_ApproveMovesBooking(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	booking := pendingBooking()
	mockBookings.On("GetByID", mock.Anything, int64(15)).Return(booking, nil)
	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)
	mockBookings.On("GetByCenterWithFilter", mock.Anything, mock.MatchedBy(func(f domain.CenterBookingsFilter) bool {
		// Само переносимое бронирование исключается из пересчёта
		return f.ExcludeID != nil && *f.ExcludeID == 15
	})).Return([]*domain.Booking{}, nil)
	mockBookings.On("Reschedule", mock.Anything, int64(15),
		time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC), types.TimeString("14:00"), domain.StatusUpcoming).
		Return(nil)

	uc := NewUseCase(mockBookings, mockCenters, &fakeTxManager{}, &noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 15})

	assert.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, string(domain.StatusUpcoming), resp.Status)
}

func TestExecute_TargetSlotFullKeepsOriginalSlot(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	mockBookings.On("GetByID", mock.Anything, int64(15)).Return(pendingBooking(), nil)
	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)
	mockBookings.On("GetByCenterWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{
		{ID: 99, StartTime: "14:00", Status: domain.StatusUpcoming},
	}, nil)

	uc := NewUseCase(mockBookings, mockCenters, &fakeTxManager{}, &noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 15})

	assert.ErrorIs(t, err, ErrSlotFull)
	mockBookings.AssertNotCalled(t, "Reschedule",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_NoPendingRequest(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	booking := pendingBooking()
	booking.Status = domain.StatusUpcoming
	booking.RequestedDate = nil
	booking.RequestedTime = nil
	mockBookings.On("GetByID", mock.Anything, int64(15)).Return(booking, nil)

	uc := NewUseCase(mockBookings, mockCenters, &fakeTxManager{}, &noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 15})

	assert.ErrorIs(t, err, ErrNoPendingRequest)
}

func TestExecute_TargetSlotOffGrid(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	booking := pendingBooking()
	booking.RequestedTime = ptr.Ptr(types.TimeString("14:10"))
	mockBookings.On("GetByID", mock.Anything, int64(15)).Return(booking, nil)
	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)

	uc := NewUseCase(mockBookings, mockCenters, &fakeTxManager{}, &noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 15})

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_BookingNotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	mockBookings.On("GetByID", mock.Anything, int64(15)).Return(nil, bookingRepo.ErrBookingNotFound)

	uc := NewUseCase(mockBookings, mockCenters, &fakeTxManager{}, &noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 15})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
