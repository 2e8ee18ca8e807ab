package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	centerRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/center"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
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

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func testCenter() *domain.ServiceCenter {
	return &domain.ServiceCenter{
		ID:                    1,
		Name:                  "EV Center North",
		OpenTime:              "09:00",
		CloseTime:             "18:00",
		SlotDurationMinutes:   30,
		MaxConcurrentBookings: 2,
	}
}

func validRequest() *Request {
	return &Request{
		CustomerID:   100,
		VehicleID:    200,
		CenterID:     1,
		Date:         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
		CustomerName: "Ivan Petrov",
	}
}

func newTestUseCase(bookingRepo BookingRepository, centerRepo CenterRepository, now time.Time) *UseCase {
	uc := NewUseCase(bookingRepo, centerRepo, &fakeTxManager{}, 60, &noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)

	// Один из двух спотов уже занят
	existing := []*domain.Booking{
		{ID: 7, StartTime: "10:00", Status: domain.StatusUpcoming},
	}
	mockBookings.On("GetByCenterWithFilter", mock.Anything, mock.Anything).Return(existing, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{
		ID:           42,
		CustomerID:   100,
		VehicleID:    200,
		CenterID:     1,
		BookingDate:  time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
		Status:       domain.StatusPendingPayment,
		CustomerName: "Ivan Petrov",
	}, nil)

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPendingPayment), resp.Status)
	mockBookings.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_SlotFull(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)

	// Оба спота заняты при MaxConcurrentBookings = 2
	existing := []*domain.Booking{
		{ID: 7, StartTime: "10:00", Status: domain.StatusUpcoming},
		{ID: 8, StartTime: "10:00", Status: domain.StatusPendingPayment},
	}
	mockBookings.On("GetByCenterWithFilter", mock.Anything, mock.Anything).Return(existing, nil)

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotFull)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_PendingPaymentHoldsSlot(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	center := testCenter()
	center.MaxConcurrentBookings = 1
	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(center, nil)

	// Неоплаченный pending_payment удерживает слот до истечения окна оплаты
	existing := []*domain.Booking{
		{ID: 9, StartTime: "10:00", Status: domain.StatusPendingPayment},
	}
	mockBookings.On("GetByCenterWithFilter", mock.Anything, mock.Anything).Return(existing, nil)

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestExecute_CancelledDoesNotHoldSlot(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	center := testCenter()
	center.MaxConcurrentBookings = 1
	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(center, nil)

	existing := []*domain.Booking{
		{ID: 9, StartTime: "10:00", Status: domain.StatusCancelled},
	}
	mockBookings.On("GetByCenterWithFilter", mock.Anything, mock.Anything).Return(existing, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{
		ID:     43,
		Status: domain.StatusPendingPayment,
	}, nil)

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(43), resp.ID)
}

func TestExecute_TooLateToBook(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)

	// Слот 2026-09-15 10:00, до начала меньше 60 минут
	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTooLateToBook)
	mockBookings.AssertNotCalled(t, "GetByCenterWithFilter", mock.Anything, mock.Anything)
}

func TestExecute_SlotInPast(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 16, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)

	req := validRequest()
	req.StartTime = "08:00"

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_LastSlotMustFitBeforeClose(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)

	// 17:45 + 30 минут выходит за 18:00
	req := validRequest()
	req.StartTime = "17:45"

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_OffGridSlot(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)

	req := validRequest()
	req.StartTime = "10:15"

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_CenterNotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(nil, centerRepo.ErrCenterNotFound)

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrCenterNotFound)
}

func TestExecute_MissingCustomerName(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	req := validRequest()
	req.CustomerName = ""

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
	mockCenters.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCountSlotOccupancy(t *testing.T) {
	bookings := []*domain.Booking{
		{StartTime: "10:00", Status: domain.StatusUpcoming},
		{StartTime: "10:00", Status: domain.StatusPendingPayment},
		{StartTime: "10:00", Status: domain.StatusCancelled},
		{StartTime: "10:30", Status: domain.StatusUpcoming},
	}

	assert.Equal(t, 2, countSlotOccupancy(types.TimeString("10:00"), bookings))
	assert.Equal(t, 1, countSlotOccupancy(types.TimeString("10:30"), bookings))
	assert.Equal(t, 0, countSlotOccupancy(types.TimeString("11:00"), bookings))
}
