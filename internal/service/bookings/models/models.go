package models

import (
	"errors"
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ConfirmDepositRequest запрос подтверждения депозита (callback платёжного шлюза)
type ConfirmDepositRequest struct {
	BookingID int64 `json:"bookingId"`
}

// RequestCancellationRequest запрос клиента на отмену бронирования
type RequestCancellationRequest struct {
	CustomerID int64   `json:"customerId"`
	Reason     *string `json:"reason,omitempty"`
}

// ResolveCancellationRequest решение сотрудника по запросу на отмену
type ResolveCancellationRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RequestRescheduleRequest запрос клиента на перенос бронирования
type RequestRescheduleRequest struct {
	CustomerID int64  `json:"customerId"`
	Date       string `json:"date"`      // "2026-09-15"
	StartTime  string `json:"startTime"` // "10:00"
}

// MarkReceivedRequest отметка о прибытии автомобиля
type MarkReceivedRequest struct {
	TechnicianID  *int64 `json:"technicianId,omitempty"`
	PackageID     *int64 `json:"packageId,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	VehicleModel  string `json:"vehicleModel,omitempty"`
}

// GetCustomerBookingsRequest запрос истории бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetCenterBookingsRequest запрос бронирований центра с фильтрацией
type GetCenterBookingsRequest struct {
	CenterID        int64      `json:"centerId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCenterBookingsRequest) ToDomainFilter() (domain.CenterBookingsFilter, error) {
	filter := domain.CenterBookingsFilter{
		CenterID:        r.CenterID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId"`
	VehicleID  int64  `json:"vehicleId"`
	CenterID   int64  `json:"centerId"`

	BookingDate string `json:"bookingDate"` // "2026-09-15"
	StartTime   string `json:"startTime"`   // "10:00"
	Status      string `json:"status"`

	CustomerName string  `json:"customerName"`
	VehiclePlate *string `json:"vehiclePlate,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	RequestedDate *string `json:"requestedDate,omitempty"` // Заполнены в update_requested
	RequestedTime *string `json:"requestedTime,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		CustomerID:   b.CustomerID,
		VehicleID:    b.VehicleID,
		CenterID:     b.CenterID,
		BookingDate:  b.BookingDate.Format(domain.DateFormat),
		StartTime:    b.StartTime.String(),
		Status:       string(b.Status),
		CustomerName: b.CustomerName,
		VehiclePlate: b.VehiclePlate,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.RequestedDate != nil {
		d := b.RequestedDate.Format(domain.DateFormat)
		resp.RequestedDate = &d
	}
	if b.RequestedTime != nil {
		t := b.RequestedTime.String()
		resp.RequestedTime = &t
	}
	resp.CancellationReason = b.CancellationReason
	if b.CancelledAt != nil {
		ts := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &ts
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	switch status {
	case domain.StatusPendingPayment,
		domain.StatusUpcoming,
		domain.StatusUpdateRequested,
		domain.StatusCancellationRequested,
		domain.StatusReceived,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusVisited:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
