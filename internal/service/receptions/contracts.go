package receptions

import (
	"context"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
)

// ReceptionRepository интерфейс репозитория приёмок
type ReceptionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reception, error)
	UpdateStatusFrom(ctx context.Context, id int64, expected, next domain.ReceptionStatus) error
	AssignTechnician(ctx context.Context, id, technicianID int64) error
	AddToTotalCost(ctx context.Context, id int64, amount float64) error
	ListRecords(ctx context.Context, receptionID int64) ([]*domain.InspectionRecord, error)
	GetRecordByID(ctx context.Context, id int64) (*domain.InspectionRecord, error)
	UpdateRecordAction(ctx context.Context, id int64, action domain.RecordAction, expectedVersion int64) error
	CreatePartRequest(ctx context.Context, req *domain.SparePartRequest) (*domain.SparePartRequest, error)
	GetPartRequestByID(ctx context.Context, id int64) (*domain.SparePartRequest, error)
	ListPartRequests(ctx context.Context, receptionID int64) ([]*domain.SparePartRequest, error)
	UpdatePartRequestStatusFrom(ctx context.Context, id int64, expected, next domain.SparePartRequestStatus) error
}

// BookingRepository интерфейс репозитория бронирований
// Нужен для завершения связанного бронирования вслед за приёмкой
type BookingRepository interface {
	UpdateStatusFrom(ctx context.Context, id int64, expected, next domain.BookingStatus) error
}

// CatalogRepository интерфейс справочника запчастей
type CatalogRepository interface {
	GetPartByID(ctx context.Context, id int64) (*domain.SparePart, error)
	DeductStock(ctx context.Context, partID int64, quantity int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
