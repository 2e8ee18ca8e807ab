package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	bookingRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/booking"
	centerRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/center"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/integrations/paymentgw"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings/models"
	createReceptionUC "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/create_reception"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/ptr"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo      BookingRepository
	centerRepo       CenterRepository
	paymentClient    PaymentGatewayClient
	receptionCreator ReceptionCreator
	txManager        TransactionManager
	timeProvider     TimeProvider

	modifyLeadMinutes   int
	arrivalGraceMinutes int

	logger Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	centerRepo CenterRepository,
	paymentClient PaymentGatewayClient,
	receptionCreator ReceptionCreator,
	txManager TransactionManager,
	modifyLeadMinutes int,
	arrivalGraceMinutes int,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:         bookingRepo,
		centerRepo:          centerRepo,
		paymentClient:       paymentClient,
		receptionCreator:    receptionCreator,
		txManager:           txManager,
		timeProvider:        &RealTimeProvider{},
		modifyLeadMinutes:   modifyLeadMinutes,
		arrivalGraceMinutes: arrivalGraceMinutes,
		logger:              logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только свои бронирования
func (s *Service) GetByID(ctx context.Context, id int64, customerID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for customer=%d", id, customerID)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != customerID {
		s.logger.Warn("GetByID: access denied for customer=%d to booking id=%d", customerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetCenterBookings получает бронирования центра с гибкой фильтрацией
// Доступно сотрудникам центра
func (s *Service) GetCenterBookings(ctx context.Context, req *models.GetCenterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCenterBookings: center=%d, includeInactive=%t", req.CenterID, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCenterBookings: invalid filter for center=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCenterWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCenterBookings: repository error for center=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: GetCenterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCenterBookings: fetched %d bookings for center=%d", len(bookings), req.CenterID)
	return models.FromDomainBookingList(bookings), nil
}

// ConfirmDeposit обрабатывает callback платёжного шлюза о внесении депозита
// Идемпотентен: повторный callback для уже подтверждённого бронирования
// завершается успехом без изменений. Факт оплаты перепроверяется у шлюза.
func (s *Service) ConfirmDeposit(ctx context.Context, bookingID int64) error {
	s.logger.Info("ConfirmDeposit: booking id=%d", bookingID)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	// Повторный callback после успешного подтверждения
	if booking.Status == domain.StatusUpcoming {
		s.logger.Info("ConfirmDeposit: booking id=%d already upcoming, no-op", bookingID)
		return nil
	}

	if booking.Status != domain.StatusPendingPayment {
		s.logger.Warn("ConfirmDeposit: booking id=%d in status=%s, transition not allowed",
			bookingID, booking.Status)
		return ErrInvalidState
	}

	// Не доверяем факту вызова callback'а: спрашиваем шлюз
	deposit, err := s.paymentClient.GetDepositStatus(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentgw.ErrPaymentNotFound) {
			s.logger.Warn("ConfirmDeposit: no payment known for booking id=%d", bookingID)
			return ErrDepositUnpaid
		}
		s.logger.Error("ConfirmDeposit: payment gateway error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: %v", ErrPaymentGatewayUnavailable, err)
	}

	if !deposit.Paid {
		s.logger.Warn("ConfirmDeposit: deposit for booking id=%d is not paid", bookingID)
		return ErrDepositUnpaid
	}

	err = s.bookingRepo.UpdateStatusFrom(ctx, bookingID, domain.StatusPendingPayment, domain.StatusUpcoming)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Кто-то успел раньше: повторный callback или sweeper
			current, getErr := s.getBooking(ctx, bookingID)
			if getErr == nil && current.Status == domain.StatusUpcoming {
				s.logger.Info("ConfirmDeposit: booking id=%d confirmed concurrently, no-op", bookingID)
				return nil
			}
			s.logger.Warn("ConfirmDeposit: booking id=%d changed status concurrently", bookingID)
			return ErrInvalidState
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("ConfirmDeposit: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: ConfirmDeposit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ConfirmDeposit: booking id=%d confirmed, now upcoming", bookingID)
	return nil
}

// RequestCancellation открывает запрос клиента на отмену бронирования
// Требует, чтобы до начала слота оставалось не меньше modifyLeadMinutes
func (s *Service) RequestCancellation(ctx context.Context, bookingID int64, req *models.RequestCancellationRequest) error {
	s.logger.Info("RequestCancellation: booking id=%d by customer=%d", bookingID, req.CustomerID)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.CustomerID != req.CustomerID {
		s.logger.Warn("RequestCancellation: access denied for customer=%d to booking id=%d",
			req.CustomerID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeModified() {
		s.logger.Warn("RequestCancellation: booking id=%d in status=%s cannot be modified",
			bookingID, booking.Status)
		return ErrInvalidState
	}

	if err := s.checkModifyLead(booking); err != nil {
		s.logger.Warn("RequestCancellation: booking id=%d: %v", bookingID, err)
		return err
	}

	err = s.bookingRepo.UpdateStatusFrom(ctx, bookingID, domain.StatusUpcoming, domain.StatusCancellationRequested)
	if err != nil {
		return s.mapTransitionError(err, "RequestCancellation", bookingID)
	}

	s.logger.Info("RequestCancellation: booking id=%d now awaiting staff decision", bookingID)
	return nil
}

// ApproveCancellation одобряет запрос на отмену: бронирование отменяется,
// слот освобождается самим фактом смены статуса
func (s *Service) ApproveCancellation(ctx context.Context, bookingID int64, req *models.ResolveCancellationRequest) error {
	s.logger.Info("ApproveCancellation: booking id=%d", bookingID)

	reason := req.Reason
	if reason == "" {
		reason = "cancellation approved by staff"
	}

	err := s.bookingRepo.CancelFrom(ctx, bookingID, domain.StatusCancellationRequested, reason)
	if err != nil {
		return s.mapTransitionError(err, "ApproveCancellation", bookingID)
	}

	s.logger.Info("ApproveCancellation: booking id=%d cancelled", bookingID)
	return nil
}

// RejectCancellation отклоняет запрос на отмену, бронирование возвращается в upcoming
func (s *Service) RejectCancellation(ctx context.Context, bookingID int64) error {
	s.logger.Info("RejectCancellation: booking id=%d", bookingID)

	err := s.bookingRepo.ResolveRequest(ctx, bookingID, domain.StatusCancellationRequested, domain.StatusUpcoming)
	if err != nil {
		return s.mapTransitionError(err, "RejectCancellation", bookingID)
	}

	s.logger.Info("RejectCancellation: booking id=%d back to upcoming", bookingID)
	return nil
}

// RequestReschedule открывает запрос клиента на перенос бронирования
// Желаемый слот проверяется на правила центра и свободные места заранее,
// окончательный пересчёт выполнит approveReschedule в транзакции
func (s *Service) RequestReschedule(ctx context.Context, bookingID int64, req *models.RequestRescheduleRequest) error {
	s.logger.Info("RequestReschedule: booking id=%d by customer=%d to %s %s",
		bookingID, req.CustomerID, req.Date, req.StartTime)

	targetDate, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return fmt.Errorf("%w: invalid date format, want YYYY-MM-DD", ErrInvalidInput)
	}

	targetTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return fmt.Errorf("%w: invalid startTime format, want HH:MM", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.CustomerID != req.CustomerID {
		s.logger.Warn("RequestReschedule: access denied for customer=%d to booking id=%d",
			req.CustomerID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeModified() {
		s.logger.Warn("RequestReschedule: booking id=%d in status=%s cannot be modified",
			bookingID, booking.Status)
		return ErrInvalidState
	}

	if err := s.checkModifyLead(booking); err != nil {
		s.logger.Warn("RequestReschedule: booking id=%d: %v", bookingID, err)
		return err
	}

	center, err := s.centerRepo.GetByID(ctx, booking.CenterID)
	if err != nil {
		if errors.Is(err, centerRepo.ErrCenterNotFound) {
			return ErrCenterNotFound
		}
		s.logger.Error("RequestReschedule: failed to get center id=%d: %v", booking.CenterID, err)
		return fmt.Errorf("%w: RequestReschedule - failed to get center: %v", ErrInternal, err)
	}

	if !center.IsWithinOperatingHours(targetTime) || !center.IsOnSlotGrid(targetTime) {
		s.logger.Warn("RequestReschedule: target slot %s %s invalid for center id=%d",
			req.Date, targetTime, center.ID)
		return ErrInvalidTimeSlot
	}

	// Предварительная проверка занятости, без блокировки
	occupants, err := s.bookingRepo.GetByCenterWithFilter(ctx, domain.CenterBookingsFilter{
		CenterID:        booking.CenterID,
		StartDate:       &targetDate,
		EndDate:         &targetDate,
		StartTime:       ptr.Ptr(targetTime),
		ExcludeID:       ptr.Ptr(booking.ID),
		IncludeInactive: false,
	})
	if err != nil {
		s.logger.Error("RequestReschedule: failed to check target slot: %v", err)
		return fmt.Errorf("%w: RequestReschedule - failed to check target slot: %v", ErrInternal, err)
	}

	occupied := 0
	for _, b := range occupants {
		if b.OccupiesSlot() {
			occupied++
		}
	}
	if occupied >= center.MaxConcurrentBookings {
		s.logger.Warn("RequestReschedule: target slot full, %d/%d spots taken",
			occupied, center.MaxConcurrentBookings)
		return ErrSlotFull
	}

	if err := s.bookingRepo.SetRequestedSlot(ctx, bookingID, targetDate, targetTime); err != nil {
		return s.mapTransitionError(err, "RequestReschedule", bookingID)
	}

	s.logger.Info("RequestReschedule: booking id=%d now awaiting staff decision", bookingID)
	return nil
}

// RejectReschedule отклоняет запрос на перенос: запрошенный слот очищается,
// бронирование возвращается в upcoming
func (s *Service) RejectReschedule(ctx context.Context, bookingID int64) error {
	s.logger.Info("RejectReschedule: booking id=%d", bookingID)

	err := s.bookingRepo.ResolveRequest(ctx, bookingID, domain.StatusUpdateRequested, domain.StatusUpcoming)
	if err != nil {
		return s.mapTransitionError(err, "RejectReschedule", bookingID)
	}

	s.logger.Info("RejectReschedule: booking id=%d back to upcoming", bookingID)
	return nil
}

// MarkReceived отмечает прибытие автомобиля и создаёт приёмку
// Требует upcoming и текущее время в окне прибытия
// [начало слота, начало слота + arrivalGraceMinutes)
func (s *Service) MarkReceived(ctx context.Context, bookingID int64, req *models.MarkReceivedRequest) (*createReceptionUC.Response, error) {
	s.logger.Info("MarkReceived: booking id=%d", bookingID)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != domain.StatusUpcoming {
		s.logger.Warn("MarkReceived: booking id=%d in status=%s, arrival not allowed",
			bookingID, booking.Status)
		return nil, ErrInvalidState
	}

	now := s.timeProvider.Now()
	slotStart := booking.StartTime.OnDate(booking.BookingDate)
	graceEnd := slotStart.Add(time.Duration(s.arrivalGraceMinutes) * time.Minute)

	if now.Before(slotStart) {
		s.logger.Warn("MarkReceived: booking id=%d, too early (slot starts at %s)",
			bookingID, slotStart.Format(time.RFC3339))
		return nil, ErrTooEarly
	}
	if !now.Before(graceEnd) {
		s.logger.Warn("MarkReceived: booking id=%d, arrival window expired at %s",
			bookingID, graceEnd.Format(time.RFC3339))
		return nil, ErrNoShowExpired
	}

	var reception *createReceptionUC.Response

	// Переход в received и создание приёмки атомарны
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		err := s.bookingRepo.UpdateStatusFrom(txCtx, bookingID, domain.StatusUpcoming, domain.StatusReceived)
		if err != nil {
			return s.mapTransitionError(err, "MarkReceived", bookingID)
		}

		vehiclePlate := ""
		if booking.VehiclePlate != nil {
			vehiclePlate = *booking.VehiclePlate
		}

		reception, err = s.receptionCreator.Execute(txCtx, &createReceptionUC.Request{
			BookingID:     ptr.Ptr(bookingID),
			CustomerID:    booking.CustomerID,
			CustomerName:  booking.CustomerName,
			CustomerPhone: req.CustomerPhone,
			VehicleID:     booking.VehicleID,
			VehicleModel:  req.VehicleModel,
			VehiclePlate:  vehiclePlate,
			CenterID:      booking.CenterID,
			TechnicianID:  req.TechnicianID,
			PackageID:     req.PackageID,
		})
		if err != nil {
			s.logger.Error("MarkReceived: failed to create reception for booking id=%d: %v", bookingID, err)
			return err
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("MarkReceived: booking id=%d received, reception id=%d created",
		bookingID, reception.ID)
	return reception, nil
}

// getBooking получает бронирование, транслируя ошибки репозитория
func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// checkModifyLead проверяет, что до начала слота остаётся modifyLeadMinutes
func (s *Service) checkModifyLead(booking *domain.Booking) error {
	now := s.timeProvider.Now()
	slotStart := booking.StartTime.OnDate(booking.BookingDate)
	deadline := slotStart.Add(-time.Duration(s.modifyLeadMinutes) * time.Minute)

	if now.After(deadline) {
		return fmt.Errorf("%w: requests close %d minutes before the slot", ErrTooLateToModify, s.modifyLeadMinutes)
	}
	return nil
}

// mapTransitionError транслирует ошибки guarded-переходов репозитория
func (s *Service) mapTransitionError(err error, op string, bookingID int64) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d not found", op, bookingID)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		s.logger.Warn("%s: booking id=%d status conflict: %v", op, bookingID, err)
		return ErrInvalidState
	default:
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
