package create_reception

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	bookingRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/booking"
	receptionRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/reception"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/ptr"
)

type MockReceptionRepository struct {
	mock.Mock
}

func (m *MockReceptionRepository) Create(ctx context.Context, rec *domain.Reception) (*domain.Reception, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reception), args.Error(1)
}

func (m *MockReceptionRepository) GetByID(ctx context.Context, id int64) (*domain.Reception, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reception), args.Error(1)
}

func (m *MockReceptionRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Reception, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reception), args.Error(1)
}

func (m *MockReceptionRepository) CreateRecords(ctx context.Context, receptionID int64, taskIDs []int64) error {
	args := m.Called(ctx, receptionID, taskIDs)
	return args.Error(0)
}

func (m *MockReceptionRepository) ListRecordTaskIDs(ctx context.Context, receptionID int64) ([]int64, error) {
	args := m.Called(ctx, receptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

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

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetPackageByID(ctx context.Context, id int64) (*domain.MaintenancePackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenancePackage), args.Error(1)
}

func (m *MockCatalogRepository) ListTasksUpToDistance(ctx context.Context, distanceKM int) ([]*domain.InspectionTask, error) {
	args := m.Called(ctx, distanceKM)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InspectionTask), args.Error(1)
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
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

func newTestUseCase(receptions *MockReceptionRepository, bookings *MockBookingRepository, catalog *MockCatalogRepository) *UseCase {
	return NewUseCase(receptions, bookings, catalog, &fakeTxManager{}, &noopLogger{})
}

func walkInRequest() *Request {
	return &Request{
		CustomerID:   100,
		CustomerName: "Ivan Petrov",
		VehicleID:    200,
		VehiclePlate: "A123BC",
		CenterID:     1,
	}
}

// Пакет уровня 2 с порогом 5000 км разворачивается кумулятивно:
// попадают все задачи классов 1000 и 5000 км
func TestExecute_CumulativePackageExpansion(t *testing.T) {
	mockReceptions := new(MockReceptionRepository)
	mockBookings := new(MockBookingRepository)
	mockCatalog := new(MockCatalogRepository)

	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(&domain.Booking{
		ID:     10,
		Status: domain.StatusReceived,
	}, nil)
	mockReceptions.On("GetByBookingID", mock.Anything, int64(10)).
		Return(nil, receptionRepo.ErrReceptionNotFound)
	mockReceptions.On("Create", mock.Anything, mock.Anything).Return(&domain.Reception{
		ID:        55,
		BookingID: ptr.Ptr(int64(10)),
		PackageID: ptr.Ptr(int64(2)),
		Status:    domain.ReceptionReceived,
	}, nil)

	mockCatalog.On("GetPackageByID", mock.Anything, int64(2)).Return(&domain.MaintenancePackage{
		ID:         2,
		Level:      2,
		DistanceKM: 5000,
	}, nil)

	// Каталог: 2 задачи на 1000 км, 3 задачи на 5000 км
	tasks := []*domain.InspectionTask{
		{ID: 1, DistanceIntervalKM: 1000},
		{ID: 2, DistanceIntervalKM: 1000},
		{ID: 3, DistanceIntervalKM: 5000},
		{ID: 4, DistanceIntervalKM: 5000},
		{ID: 5, DistanceIntervalKM: 5000},
	}
	mockCatalog.On("ListTasksUpToDistance", mock.Anything, 5000).Return(tasks, nil)

	mockReceptions.On("CreateRecords", mock.Anything, int64(55), []int64{1, 2, 3, 4, 5}).Return(nil)

	uc := newTestUseCase(mockReceptions, mockBookings, mockCatalog)

	req := walkInRequest()
	req.BookingID = ptr.Ptr(int64(10))
	req.PackageID = ptr.Ptr(int64(2))

	resp, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, int64(55), resp.ID)
	assert.Equal(t, 5, resp.RecordsCreated)
	mockReceptions.AssertCalled(t, "CreateRecords", mock.Anything, int64(55), []int64{1, 2, 3, 4, 5})
}

func TestExecute_WalkInCreatesAuditBooking(t *testing.T) {
	mockReceptions := new(MockReceptionRepository)
	mockBookings := new(MockBookingRepository)
	mockCatalog := new(MockCatalogRepository)

	now := time.Date(2026, 9, 15, 11, 42, 0, 0, time.UTC)

	mockBookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusVisited && b.CustomerID == 100 && b.StartTime == "11:42"
	})).Return(&domain.Booking{ID: 77, Status: domain.StatusVisited}, nil)

	mockReceptions.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reception) bool {
		// BookingID приёмки остаётся nil, аудиторная запись не привязывается
		return r.BookingID == nil && r.Status == domain.ReceptionReceived
	})).Return(&domain.Reception{ID: 56, Status: domain.ReceptionReceived}, nil)

	uc := newTestUseCase(mockReceptions, mockBookings, mockCatalog)
	uc.timeProvider = &fakeTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), walkInRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(56), resp.ID)
	assert.Equal(t, 0, resp.RecordsCreated)
	mockBookings.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_TechnicianAtCreationStartsAssigned(t *testing.T) {
	mockReceptions := new(MockReceptionRepository)
	mockBookings := new(MockBookingRepository)
	mockCatalog := new(MockCatalogRepository)

	mockBookings.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Booking{ID: 78, Status: domain.StatusVisited}, nil)
	mockReceptions.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reception) bool {
		return r.Status == domain.ReceptionAssigned
	})).Return(&domain.Reception{ID: 57, Status: domain.ReceptionAssigned}, nil)

	uc := newTestUseCase(mockReceptions, mockBookings, mockCatalog)
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC)}

	req := walkInRequest()
	req.TechnicianID = ptr.Ptr(int64(5))

	resp, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, string(domain.ReceptionAssigned), resp.Status)
}

func TestExecute_DuplicateReceptionRejected(t *testing.T) {
	mockReceptions := new(MockReceptionRepository)
	mockBookings := new(MockBookingRepository)
	mockCatalog := new(MockCatalogRepository)

	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(&domain.Booking{ID: 10}, nil)
	mockReceptions.On("GetByBookingID", mock.Anything, int64(10)).
		Return(&domain.Reception{ID: 55}, nil)

	uc := newTestUseCase(mockReceptions, mockBookings, mockCatalog)

	req := walkInRequest()
	req.BookingID = ptr.Ptr(int64(10))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrReceptionExists)
	mockReceptions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_BookingNotFound(t *testing.T) {
	mockReceptions := new(MockReceptionRepository)
	mockBookings := new(MockBookingRepository)
	mockCatalog := new(MockCatalogRepository)

	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(nil, bookingRepo.ErrBookingNotFound)

	uc := newTestUseCase(mockReceptions, mockBookings, mockCatalog)

	req := walkInRequest()
	req.BookingID = ptr.Ptr(int64(10))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCreateMissingRecords_InsertsOnlyMissing(t *testing.T) {
	mockReceptions := new(MockReceptionRepository)
	mockBookings := new(MockBookingRepository)
	mockCatalog := new(MockCatalogRepository)

	mockReceptions.On("GetByID", mock.Anything, int64(55)).Return(&domain.Reception{
		ID:        55,
		PackageID: ptr.Ptr(int64(2)),
	}, nil)
	mockCatalog.On("GetPackageByID", mock.Anything, int64(2)).Return(&domain.MaintenancePackage{
		ID:         2,
		DistanceKM: 5000,
	}, nil)
	mockCatalog.On("ListTasksUpToDistance", mock.Anything, 5000).Return([]*domain.InspectionTask{
		{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5},
	}, nil)

	// Развёртывание прервалось после двух записей
	mockReceptions.On("ListRecordTaskIDs", mock.Anything, int64(55)).Return([]int64{1, 2}, nil)
	mockReceptions.On("CreateRecords", mock.Anything, int64(55), []int64{3, 4, 5}).Return(nil)

	uc := newTestUseCase(mockReceptions, mockBookings, mockCatalog)

	created, err := uc.CreateMissingRecords(context.Background(), 55)

	assert.NoError(t, err)
	assert.Equal(t, 3, created)
}

func TestCreateMissingRecords_IdempotentWhenComplete(t *testing.T) {
	mockReceptions := new(MockReceptionRepository)
	mockBookings := new(MockBookingRepository)
	mockCatalog := new(MockCatalogRepository)

	mockReceptions.On("GetByID", mock.Anything, int64(55)).Return(&domain.Reception{
		ID:        55,
		PackageID: ptr.Ptr(int64(2)),
	}, nil)
	mockCatalog.On("GetPackageByID", mock.Anything, int64(2)).Return(&domain.MaintenancePackage{
		ID:         2,
		DistanceKM: 5000,
	}, nil)
	mockCatalog.On("ListTasksUpToDistance", mock.Anything, 5000).Return([]*domain.InspectionTask{
		{ID: 1}, {ID: 2},
	}, nil)
	mockReceptions.On("ListRecordTaskIDs", mock.Anything, int64(55)).Return([]int64{1, 2}, nil)

	uc := newTestUseCase(mockReceptions, mockBookings, mockCatalog)

	created, err := uc.CreateMissingRecords(context.Background(), 55)

	assert.NoError(t, err)
	assert.Equal(t, 0, created)
	mockReceptions.AssertNotCalled(t, "CreateRecords", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMissingRecords_NoPackageSelected(t *testing.T) {
	mockReceptions := new(MockReceptionRepository)
	mockBookings := new(MockBookingRepository)
	mockCatalog := new(MockCatalogRepository)

	mockReceptions.On("GetByID", mock.Anything, int64(55)).Return(&domain.Reception{ID: 55}, nil)

	uc := newTestUseCase(mockReceptions, mockBookings, mockCatalog)

	_, err := uc.CreateMissingRecords(context.Background(), 55)

	assert.ErrorIs(t, err, ErrNoPackageSelected)
}
