package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	centerRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/center"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	centerRepo     CenterRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	minLeadMinutes int
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	centerRepo CenterRepository,
	txManager TransactionManager,
	minLeadMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		centerRepo:     centerRepo,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		minLeadMinutes: minLeadMinutes,
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// пересчёт занятости слота и вставка нового бронирования атомарны
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, vehicle=%d, center=%d, date=%s, time=%s",
		req.CustomerID, req.VehicleID, req.CenterID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем сервисный центр
	center, err := uc.centerRepo.GetByID(ctx, req.CenterID)
	if err != nil {
		if errors.Is(err, centerRepo.ErrCenterNotFound) {
			uc.logger.Warn("CreateBooking: center id=%d not found", req.CenterID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("CreateBooking: failed to get center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}

	// 4. Проверяем рабочие часы и сетку слотов центра
	if err := validateSlot(center, req.StartTime); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 5. Проверяем минимальный запас до начала слота
	if err := validateLeadTime(req.Date, req.StartTime, now, uc.minLeadMinutes); err != nil {
		uc.logger.Warn("CreateBooking: lead time validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем все активные бронирования слота с блокировкой (FOR UPDATE)
		filter := domain.CenterBookingsFilter{
			CenterID:        req.CenterID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			StartTime:       ptr.Ptr(req.StartTime),
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByCenterWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slot bookings: %v", err)
			return fmt.Errorf("%w: failed to get slot bookings: %v", ErrInternal, err)
		}

		// 6.2. Проверяем вместимость слота
		// При MaxConcurrentBookings = 2 допустимо occupied = 0 или 1
		occupied := countSlotOccupancy(req.StartTime, bookings)
		if occupied >= center.MaxConcurrentBookings {
			uc.logger.Warn("CreateBooking: slot full, %d/%d spots taken",
				occupied, center.MaxConcurrentBookings)
			return ErrSlotFull
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d spots taken",
			occupied, center.MaxConcurrentBookings)

		// 6.3. Создаем бронирование в статусе pending_payment
		// Слот занят сразу, но удерживается только до истечения окна оплаты
		booking := &domain.Booking{
			CustomerID:   req.CustomerID,
			VehicleID:    req.VehicleID,
			CenterID:     req.CenterID,
			BookingDate:  req.Date,
			StartTime:    req.StartTime,
			Status:       domain.StatusPendingPayment,
			CustomerName: req.CustomerName,
			VehiclePlate: req.VehiclePlate,
			Notes:        req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d in pending_payment", result.ID)

	return &Response{
		ID:           result.ID,
		CustomerID:   result.CustomerID,
		VehicleID:    result.VehicleID,
		CenterID:     result.CenterID,
		BookingDate:  result.BookingDate,
		StartTime:    result.StartTime,
		Status:       string(result.Status),
		CustomerName: result.CustomerName,
		VehiclePlate: result.VehiclePlate,
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
