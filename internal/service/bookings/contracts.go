package bookings

import (
	"context"
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/integrations/paymentgw"
	createReceptionUC "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/create_reception"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByCenterWithFilter(ctx context.Context, filter domain.CenterBookingsFilter) ([]*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id int64, expected, next domain.BookingStatus) error
	CancelFrom(ctx context.Context, id int64, expected domain.BookingStatus, reason string) error
	SetRequestedSlot(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error
	ResolveRequest(ctx context.Context, id int64, expected, next domain.BookingStatus) error
}

// CenterRepository интерфейс репозитория сервисных центров
type CenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceCenter, error)
}

// PaymentGatewayClient интерфейс клиента платёжного шлюза
type PaymentGatewayClient interface {
	GetDepositStatus(ctx context.Context, bookingID int64) (*paymentgw.DepositStatus, error)
}

// ReceptionCreator интерфейс use case создания приёмки
// Вызывается из MarkReceived внутри транзакции перехода в received
type ReceptionCreator interface {
	Execute(ctx context.Context, req *createReceptionUC.Request) (*createReceptionUC.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
