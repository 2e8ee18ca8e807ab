package sweep_expired

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	bookingRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/booking"
)

// CancellationReason причина, записываемая в отменённые sweeper'ом бронирования
const CancellationReason = "payment window expired"

// UseCase use case сборки просроченных неоплаченных бронирований
// Каждое бронирование отменяется guarded-переходом pending_payment -> cancelled:
// если клиент успел оплатить между выборкой и отменой, переход не пройдёт
// и бронирование останется подтверждённым
type UseCase struct {
	bookingRepo           BookingRepository
	paymentTimeoutMinutes int
	metrics               Metrics
	logger                Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если сбор метрик выключен
func NewUseCase(
	bookingRepo BookingRepository,
	paymentTimeoutMinutes int,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:           bookingRepo,
		paymentTimeoutMinutes: paymentTimeoutMinutes,
		metrics:               metrics,
		logger:                logger,
	}
}

// Execute выполняет один прогон sweeper'а на момент времени now
// Ошибка отмены одного бронирования не прерывает обработку остальных
func (uc *UseCase) Execute(ctx context.Context, now time.Time) (*Report, error) {
	cutoff := now.Add(-time.Duration(uc.paymentTimeoutMinutes) * time.Minute)

	expired, err := uc.bookingRepo.FindExpiredPending(ctx, cutoff)
	if err != nil {
		uc.logger.Error("SweepExpired: failed to find expired bookings: %v", err)
		if uc.metrics != nil {
			uc.metrics.IncSweepRuns()
		}
		return nil, fmt.Errorf("%w: failed to find expired bookings: %v", ErrInternal, err)
	}

	report := &Report{Scanned: len(expired)}

	for _, booking := range expired {
		err := uc.bookingRepo.CancelFrom(ctx, booking.ID, domain.StatusPendingPayment, CancellationReason)
		switch {
		case err == nil:
			report.Cancelled++
			uc.logger.Info("SweepExpired: cancelled booking id=%d (created_at=%s)",
				booking.ID, booking.CreatedAt.Format(time.RFC3339))
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			// Статус сменился после выборки: оплата прошла раньше отмены
			report.Skipped++
			uc.logger.Info("SweepExpired: booking id=%d changed status before sweep, skipping", booking.ID)
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			report.Skipped++
			uc.logger.Warn("SweepExpired: booking id=%d disappeared before sweep", booking.ID)
		default:
			report.Failed++
			uc.logger.Error("SweepExpired: failed to cancel booking id=%d: %v", booking.ID, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.IncSweepRuns()
		uc.metrics.AddSweepCancelled(report.Cancelled)
		uc.metrics.AddSweepFailed(report.Failed)
	}

	if report.Scanned > 0 {
		uc.logger.Info("SweepExpired: run complete, scanned=%d cancelled=%d skipped=%d failed=%d",
			report.Scanned, report.Cancelled, report.Skipped, report.Failed)
	}

	return report, nil
}
