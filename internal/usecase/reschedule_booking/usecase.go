package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	bookingRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/booking"
	centerRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/center"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/ptr"
)

// UseCase use case одобрения переноса бронирования
// Переносит бронирование на запрошенный слот атомарно: пересчёт занятости
// целевого слота и перенос выполняются в одной сериализуемой транзакции.
// Если целевой слот занят, исходный слот бронирования остаётся нетронутым.
type UseCase struct {
	bookingRepo BookingRepository
	centerRepo  CenterRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	centerRepo CenterRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		centerRepo:  centerRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет одобрение переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d", req.BookingID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var result *domain.Booking

	// 2. Выполняем перенос в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование и проверяем открытый запрос
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.Status != domain.StatusUpdateRequested ||
			booking.RequestedDate == nil || booking.RequestedTime == nil {
			uc.logger.Warn("RescheduleBooking: booking id=%d has no pending request (status=%s)",
				req.BookingID, booking.Status)
			return ErrNoPendingRequest
		}

		targetDate := *booking.RequestedDate
		targetTime := *booking.RequestedTime

		// 2.2. Получаем центр и проверяем целевой слот против его правил
		center, err := uc.centerRepo.GetByID(txCtx, booking.CenterID)
		if err != nil {
			if errors.Is(err, centerRepo.ErrCenterNotFound) {
				return ErrCenterNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get center id=%d: %v", booking.CenterID, err)
			return fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
		}

		if !center.IsWithinOperatingHours(targetTime) || !center.IsOnSlotGrid(targetTime) {
			uc.logger.Warn("RescheduleBooking: target slot %s %s is invalid for center id=%d",
				targetDate.Format(domain.DateFormat), targetTime, center.ID)
			return ErrInvalidTimeSlot
		}

		// 2.3. Пересчитываем занятость целевого слота с блокировкой (FOR UPDATE),
		// исключая само переносимое бронирование
		filter := domain.CenterBookingsFilter{
			CenterID:        booking.CenterID,
			StartDate:       &targetDate,
			EndDate:         &targetDate,
			StartTime:       ptr.Ptr(targetTime),
			ExcludeID:       ptr.Ptr(booking.ID),
			IncludeInactive: false,
		}

		occupants, err := uc.bookingRepo.GetByCenterWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get target slot bookings: %v", err)
			return fmt.Errorf("%w: failed to get target slot bookings: %v", ErrInternal, err)
		}

		occupied := 0
		for _, b := range occupants {
			if b.OccupiesSlot() {
				occupied++
			}
		}

		if occupied >= center.MaxConcurrentBookings {
			uc.logger.Warn("RescheduleBooking: target slot full, %d/%d spots taken",
				occupied, center.MaxConcurrentBookings)
			return ErrSlotFull
		}

		// 2.4. Переносим бронирование и очищаем запрошенный слот
		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, targetDate, targetTime, domain.StatusUpcoming); err != nil {
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %v", ErrInternal, err)
		}

		booking.BookingDate = targetDate
		booking.StartTime = targetTime
		booking.Status = domain.StatusUpcoming
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s %s",
		result.ID, result.BookingDate.Format(domain.DateFormat), result.StartTime)

	return &Response{
		ID:          result.ID,
		CenterID:    result.CenterID,
		BookingDate: result.BookingDate,
		StartTime:   result.StartTime,
		Status:      string(result.Status),
	}, nil
}
