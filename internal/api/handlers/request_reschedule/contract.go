package request_reschedule

import (
	"context"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings/models"
)

type BookingService interface {
	RequestReschedule(ctx context.Context, bookingID int64, req *models.RequestRescheduleRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
