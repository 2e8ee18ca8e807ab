package sweep_expired

import (
	"context"
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindExpiredPending(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error)
	CancelFrom(ctx context.Context, id int64, expected domain.BookingStatus, reason string) error
}

// Metrics интерфейс счётчиков sweeper'а
type Metrics interface {
	IncSweepRuns()
	AddSweepCancelled(n int)
	AddSweepFailed(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
