package confirm_deposit

import "context"

type BookingService interface {
	ConfirmDeposit(ctx context.Context, bookingID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
