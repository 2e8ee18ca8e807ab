package mark_received

import (
	"context"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings/models"
	createReception "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/create_reception"
)

type BookingService interface {
	MarkReceived(ctx context.Context, bookingID int64, req *models.MarkReceivedRequest) (*createReception.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
