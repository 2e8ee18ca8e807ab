package receptions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	catalogRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/catalog"
	receptionRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/reception"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/receptions/models"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/ptr"
)

type MockReceptionRepository struct {
	mock.Mock
}

func (m *MockReceptionRepository) GetByID(ctx context.Context, id int64) (*domain.Reception, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reception), args.Error(1)
}

func (m *MockReceptionRepository) UpdateStatusFrom(ctx context.Context, id int64, expected, next domain.ReceptionStatus) error {
	args := m.Called(ctx, id, expected, next)
	return args.Error(0)
}

func (m *MockReceptionRepository) AssignTechnician(ctx context.Context, id, technicianID int64) error {
	args := m.Called(ctx, id, technicianID)
	return args.Error(0)
}

func (m *MockReceptionRepository) AddToTotalCost(ctx context.Context, id int64, amount float64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockReceptionRepository) ListRecords(ctx context.Context, receptionID int64) ([]*domain.InspectionRecord, error) {
	args := m.Called(ctx, receptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InspectionRecord), args.Error(1)
}

func (m *MockReceptionRepository) GetRecordByID(ctx context.Context, id int64) (*domain.InspectionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionRecord), args.Error(1)
}

func (m *MockReceptionRepository) UpdateRecordAction(ctx context.Context, id int64, action domain.RecordAction, expectedVersion int64) error {
	args := m.Called(ctx, id, action, expectedVersion)
	return args.Error(0)
}

func (m *MockReceptionRepository) CreatePartRequest(ctx context.Context, req *domain.SparePartRequest) (*domain.SparePartRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SparePartRequest), args.Error(1)
}

func (m *MockReceptionRepository) GetPartRequestByID(ctx context.Context, id int64) (*domain.SparePartRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SparePartRequest), args.Error(1)
}

func (m *MockReceptionRepository) ListPartRequests(ctx context.Context, receptionID int64) ([]*domain.SparePartRequest, error) {
	args := m.Called(ctx, receptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SparePartRequest), args.Error(1)
}

func (m *MockReceptionRepository) UpdatePartRequestStatusFrom(ctx context.Context, id int64, expected, next domain.SparePartRequestStatus) error {
	args := m.Called(ctx, id, expected, next)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) UpdateStatusFrom(ctx context.Context, id int64, expected, next domain.BookingStatus) error {
	args := m.Called(ctx, id, expected, next)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetPartByID(ctx context.Context, id int64) (*domain.SparePart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SparePart), args.Error(1)
}

func (m *MockCatalogRepository) DeductStock(ctx context.Context, partID int64, quantity int) error {
	args := m.Called(ctx, partID, quantity)
	return args.Error(0)
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func newTestService() (*Service, *MockReceptionRepository, *MockBookingRepository, *MockCatalogRepository) {
	mockReceptions := new(MockReceptionRepository)
	mockBookings := new(MockBookingRepository)
	mockCatalog := new(MockCatalogRepository)
	svc := NewService(mockReceptions, mockBookings, mockCatalog, &fakeTxManager{}, &noopLogger{})
	return svc, mockReceptions, mockBookings, mockCatalog
}

// --- Жизненный цикл приёмки ---

func TestStartWork_FromAssigned(t *testing.T) {
	svc, mockReceptions, _, _ := newTestService()

	mockReceptions.On("GetByID", mock.Anything, int64(55)).Return(&domain.Reception{
		ID:     55,
		Status: domain.ReceptionAssigned,
	}, nil)
	mockReceptions.On("UpdateStatusFrom", mock.Anything, int64(55),
		domain.ReceptionAssigned, domain.ReceptionInProgress).Return(nil)

	err := svc.StartWork(context.Background(), 55)

	assert.NoError(t, err)
}

func TestStartWork_FromCompletedRejected(t *testing.T) {
	svc, mockReceptions, _, _ := newTestService()

	mockReceptions.On("GetByID", mock.Anything, int64(55)).Return(&domain.Reception{
		ID:     55,
		Status: domain.ReceptionCompleted,
	}, nil)

	err := svc.StartWork(context.Background(), 55)

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestComplete_AlsoCompletesLinkedBooking(t *testing.T) {
	svc, mockReceptions, mockBookings, _ := newTestService()

	mockReceptions.On("GetByID", mock.Anything, int64(55)).Return(&domain.Reception{
		ID:        55,
		BookingID: ptr.Ptr(int64(10)),
		Status:    domain.ReceptionInProgress,
	}, nil)
	mockReceptions.On("UpdateStatusFrom", mock.Anything, int64(55),
		domain.ReceptionInProgress, domain.ReceptionCompleted).Return(nil)
	mockBookings.On("UpdateStatusFrom", mock.Anything, int64(10),
		domain.StatusReceived, domain.StatusCompleted).Return(nil)

	err := svc.Complete(context.Background(), 55)

	assert.NoError(t, err)
	mockBookings.AssertCalled(t, "UpdateStatusFrom", mock.Anything, int64(10),
		domain.StatusReceived, domain.StatusCompleted)
}

func TestComplete_WalkInHasNoBookingToComplete(t *testing.T) {
	svc, mockReceptions, mockBookings, _ := newTestService()

	mockReceptions.On("GetByID", mock.Anything, int64(55)).Return(&domain.Reception{
		ID:     55,
		Status: domain.ReceptionInProgress,
	}, nil)
	mockReceptions.On("UpdateStatusFrom", mock.Anything, int64(55),
		domain.ReceptionInProgress, domain.ReceptionCompleted).Return(nil)

	err := svc.Complete(context.Background(), 55)

	assert.NoError(t, err)
	mockBookings.AssertNotCalled(t, "UpdateStatusFrom",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkPaid_OnlyFromCompleted(t *testing.T) {
	svc, mockReceptions, _, _ := newTestService()

	mockReceptions.On("UpdateStatusFrom", mock.Anything, int64(55),
		domain.ReceptionCompleted, domain.ReceptionPaid).Return(receptionRepo.ErrStatusConflict)

	err := svc.MarkPaid(context.Background(), 55)

	assert.ErrorIs(t, err, ErrInvalidState)
}

// --- Записи инспекции ---

func TestUpdateRecordStatus_VersionConflict(t *testing.T) {
	svc, mockReceptions, _, _ := newTestService()

	mockReceptions.On("UpdateRecordAction", mock.Anything, int64(7),
		domain.ActionInspected, int64(3)).Return(receptionRepo.ErrRecordVersionConflict)

	err := svc.UpdateRecordStatus(context.Background(), 7, &models.UpdateRecordStatusRequest{
		Action:  "inspected",
		Version: 3,
	})

	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestUpdateRecordStatus_InvalidAction(t *testing.T) {
	svc, mockReceptions, _, _ := newTestService()

	err := svc.UpdateRecordStatus(context.Background(), 7, &models.UpdateRecordStatusRequest{
		Action:  "painted",
		Version: 1,
	})

	assert.ErrorIs(t, err, ErrInvalidAction)
	mockReceptions.AssertNotCalled(t, "UpdateRecordAction",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchUpdateRecordStatus_PartialSuccess(t *testing.T) {
	svc, mockReceptions, _, _ := newTestService()

	mockReceptions.On("UpdateRecordAction", mock.Anything, int64(1),
		domain.ActionInspected, int64(1)).Return(nil)
	mockReceptions.On("UpdateRecordAction", mock.Anything, int64(2),
		domain.ActionReplaced, int64(1)).Return(receptionRepo.ErrRecordVersionConflict)
	mockReceptions.On("UpdateRecordAction", mock.Anything, int64(3),
		domain.ActionCleaned, int64(2)).Return(nil)

	result, err := svc.BatchUpdateRecordStatus(context.Background(), &models.BatchUpdateRecordsRequest{
		Updates: []models.BatchRecordUpdate{
			{RecordID: 1, Action: "inspected", Version: 1},
			{RecordID: 2, Action: "replaced", Version: 1},
			{RecordID: 3, Action: "cleaned", Version: 2},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Len(t, result.Failed, 1)
	assert.Equal(t, int64(2), result.Failed[0].RecordID)
}

func TestBatchUpdateRecordStatus_EmptyList(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.BatchUpdateRecordStatus(context.Background(), &models.BatchUpdateRecordsRequest{})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- Заявки на запчасти ---

func TestCreatePartRequest_SnapshotsUnitPrice(t *testing.T) {
	svc, mockReceptions, _, mockCatalog := newTestService()

	mockReceptions.On("GetByID", mock.Anything, int64(55)).Return(&domain.Reception{
		ID:     55,
		Status: domain.ReceptionInProgress,
	}, nil)
	mockCatalog.On("GetPartByID", mock.Anything, int64(3)).Return(&domain.SparePart{
		ID:        3,
		UnitPrice: 1500,
		Stock:     10,
	}, nil)
	mockReceptions.On("CreatePartRequest", mock.Anything, mock.MatchedBy(func(r *domain.SparePartRequest) bool {
		return r.UnitPrice == 1500 && r.Status == domain.PartRequestPending && r.Quantity == 2
	})).Return(&domain.SparePartRequest{
		ID:          8,
		ReceptionID: 55,
		PartID:      3,
		Quantity:    2,
		UnitPrice:   1500,
		Status:      domain.PartRequestPending,
	}, nil)

	resp, err := svc.CreatePartRequest(context.Background(), 55, &models.CreatePartRequestRequest{
		PartID:   3,
		Quantity: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(8), resp.ID)
	assert.Equal(t, 1500.0, resp.UnitPrice)
}

func TestCreatePartRequest_DoneReceptionRejected(t *testing.T) {
	svc, mockReceptions, _, _ := newTestService()

	mockReceptions.On("GetByID", mock.Anything, int64(55)).Return(&domain.Reception{
		ID:     55,
		Status: domain.ReceptionPaid,
	}, nil)

	_, err := svc.CreatePartRequest(context.Background(), 55, &models.CreatePartRequestRequest{
		PartID:   3,
		Quantity: 1,
	})

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApprovePartRequest_DeductsStockAndAddsCost(t *testing.T) {
	svc, mockReceptions, _, mockCatalog := newTestService()

	mockReceptions.On("GetPartRequestByID", mock.Anything, int64(8)).Return(&domain.SparePartRequest{
		ID:          8,
		ReceptionID: 55,
		PartID:      3,
		Quantity:    2,
		UnitPrice:   1500,
		Status:      domain.PartRequestPending,
	}, nil)
	mockCatalog.On("DeductStock", mock.Anything, int64(3), 2).Return(nil)
	mockReceptions.On("AddToTotalCost", mock.Anything, int64(55), 3000.0).Return(nil)
	mockReceptions.On("UpdatePartRequestStatusFrom", mock.Anything, int64(8),
		domain.PartRequestPending, domain.PartRequestApproved).Return(nil)

	err := svc.ApprovePartRequest(context.Background(), 8)

	assert.NoError(t, err)
	mockReceptions.AssertCalled(t, "AddToTotalCost", mock.Anything, int64(55), 3000.0)
}

func TestApprovePartRequest_InsufficientStock(t *testing.T) {
	svc, mockReceptions, _, mockCatalog := newTestService()

	mockReceptions.On("GetPartRequestByID", mock.Anything, int64(8)).Return(&domain.SparePartRequest{
		ID:          8,
		ReceptionID: 55,
		PartID:      3,
		Quantity:    20,
		UnitPrice:   1500,
		Status:      domain.PartRequestPending,
	}, nil)
	mockCatalog.On("DeductStock", mock.Anything, int64(3), 20).Return(catalogRepo.ErrInsufficientStock)

	err := svc.ApprovePartRequest(context.Background(), 8)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	mockReceptions.AssertNotCalled(t, "UpdatePartRequestStatusFrom",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApprovePartRequest_AlreadyResolved(t *testing.T) {
	svc, mockReceptions, _, _ := newTestService()

	mockReceptions.On("GetPartRequestByID", mock.Anything, int64(8)).Return(&domain.SparePartRequest{
		ID:     8,
		Status: domain.PartRequestRejected,
	}, nil)

	err := svc.ApprovePartRequest(context.Background(), 8)

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestMarkPartRequestUsed_OnlyFromApproved(t *testing.T) {
	svc, mockReceptions, _, _ := newTestService()

	mockReceptions.On("UpdatePartRequestStatusFrom", mock.Anything, int64(8),
		domain.PartRequestApproved, domain.PartRequestUsed).Return(receptionRepo.ErrStatusConflict)

	err := svc.MarkPartRequestUsed(context.Background(), 8)

	assert.ErrorIs(t, err, ErrInvalidState)
}

// --- AssignTechnician ---

func TestAssignTechnician_MovesReceivedToAssigned(t *testing.T) {
	svc, mockReceptions, _, _ := newTestService()

	mockReceptions.On("GetByID", mock.Anything, int64(55)).Return(&domain.Reception{
		ID:     55,
		Status: domain.ReceptionReceived,
	}, nil)
	mockReceptions.On("AssignTechnician", mock.Anything, int64(55), int64(5)).Return(nil)
	mockReceptions.On("UpdateStatusFrom", mock.Anything, int64(55),
		domain.ReceptionReceived, domain.ReceptionAssigned).Return(nil)

	err := svc.AssignTechnician(context.Background(), 55, &models.AssignTechnicianRequest{TechnicianID: 5})

	assert.NoError(t, err)
}

func TestAssignTechnician_ReassignKeepsStatus(t *testing.T) {
	svc, mockReceptions, _, _ := newTestService()

	mockReceptions.On("GetByID", mock.Anything, int64(55)).Return(&domain.Reception{
		ID:     55,
		Status: domain.ReceptionInProgress,
	}, nil)
	mockReceptions.On("AssignTechnician", mock.Anything, int64(55), int64(6)).Return(nil)

	err := svc.AssignTechnician(context.Background(), 55, &models.AssignTechnicianRequest{TechnicianID: 6})

	assert.NoError(t, err)
	mockReceptions.AssertNotCalled(t, "UpdateStatusFrom",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
