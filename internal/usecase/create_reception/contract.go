package create_reception

import (
	"context"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
)

// ReceptionRepository интерфейс репозитория приёмок
type ReceptionRepository interface {
	Create(ctx context.Context, rec *domain.Reception) (*domain.Reception, error)
	GetByID(ctx context.Context, id int64) (*domain.Reception, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Reception, error)
	CreateRecords(ctx context.Context, receptionID int64, taskIDs []int64) error
	ListRecordTaskIDs(ctx context.Context, receptionID int64) ([]int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogRepository интерфейс справочника пакетов ТО и задач осмотра
type CatalogRepository interface {
	GetPackageByID(ctx context.Context, id int64) (*domain.MaintenancePackage, error)
	ListTasksUpToDistance(ctx context.Context, distanceKM int) ([]*domain.InspectionTask, error)
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
