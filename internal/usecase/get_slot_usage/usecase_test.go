package get_slot_usage

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
		OpenTime:              "09:00",
		CloseTime:             "12:00",
		SlotDurationMinutes:   60,
		MaxConcurrentBookings: 2,
	}
}

func newTestUseCase(bookings *MockBookingRepository, centers *MockCenterRepository, now time.Time) *UseCase {
	uc := NewUseCase(bookings, centers, &noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecute_GridCoversWorkingHours(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)
	mockBookings.On("GetByCenterWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{CenterID: 1, Date: date})

	assert.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[2].StartTime)
	assert.Equal(t, 2, resp.Slots[0].TotalSpots)
}

func TestExecute_CancelledBookingDoesNotOccupy(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)
	mockBookings.On("GetByCenterWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{
		{ID: 1, StartTime: "09:00", Status: domain.StatusUpcoming},
		{ID: 2, StartTime: "09:00", Status: domain.StatusPendingPayment},
		{ID: 3, StartTime: "09:00", Status: domain.StatusCancelled},
		{ID: 4, StartTime: "10:00", Status: domain.StatusReceived},
	}, nil)

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{CenterID: 1, Date: date})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Slots[0].OccupiedSpots)
	assert.Equal(t, 1, resp.Slots[1].OccupiedSpots)
	assert.Equal(t, 0, resp.Slots[2].OccupiedSpots)
}

func TestExecute_FromNowDropsPastSlotsKeepsCurrent(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	// 10:30 внутри слота 10:00, слот 09:00 уже закончился
	now := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)
	mockBookings.On("GetByCenterWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

	uc := newTestUseCase(mockBookings, mockCenters, now)

	resp, err := uc.Execute(context.Background(), &Request{CenterID: 1, Date: date, FromNow: true})

	assert.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.True(t, resp.Slots[0].IsCurrent)
	assert.False(t, resp.Slots[1].IsCurrent)
}

func TestExecute_LimitTruncatesGrid(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(testCenter(), nil)
	mockBookings.On("GetByCenterWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

	uc := newTestUseCase(mockBookings, mockCenters, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{CenterID: 1, Date: date, Limit: 1})

	assert.NoError(t, err)
	assert.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
}

func TestExecute_CenterNotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCenters := new(MockCenterRepository)

	mockCenters.On("GetByID", mock.Anything, int64(1)).Return(nil, centerRepo.ErrCenterNotFound)

	uc := newTestUseCase(mockBookings, mockCenters, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		CenterID: 1,
		Date:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrCenterNotFound)
}

func TestGenerateSlotGrid_LastSlotMustFitBeforeClose(t *testing.T) {
	center := &domain.ServiceCenter{
		OpenTime:            "09:00",
		CloseTime:           "10:45",
		SlotDurationMinutes: 30,
	}

	grid, err := generateSlotGrid(center)

	assert.NoError(t, err)
	// 10:30 не помещается до 10:45 целиком
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, grid)
}

func TestGenerateSlotGrid_NoRoomForASingleSlot(t *testing.T) {
	center := &domain.ServiceCenter{
		OpenTime:            "09:00",
		CloseTime:           "09:15",
		SlotDurationMinutes: 30,
	}

	_, err := generateSlotGrid(center)

	assert.Error(t, err)
}
