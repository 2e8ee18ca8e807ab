package domain

import (
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	// StatusPendingPayment initial state, waiting for the deposit
	StatusPendingPayment BookingStatus = "pending_payment"
	// StatusUpcoming deposit received, appointment confirmed
	StatusUpcoming BookingStatus = "upcoming"
	// StatusUpdateRequested customer asked to move the appointment, waiting for staff
	StatusUpdateRequested BookingStatus = "update_requested"
	// StatusCancellationRequested customer asked to cancel, waiting for staff
	StatusCancellationRequested BookingStatus = "cancellation_requested"
	// StatusReceived vehicle arrived, reception created
	StatusReceived BookingStatus = "received"
	// StatusCompleted terminal, service session finished
	StatusCompleted BookingStatus = "completed"
	// StatusCancelled terminal, by customer, staff or the expiry sweeper
	StatusCancelled BookingStatus = "cancelled"
	// StatusVisited terminal, audit stub for walk-ins that never held a booking
	StatusVisited BookingStatus = "visited"
)

// Booking represents a service appointment at a center
type Booking struct {
	ID         int64
	CustomerID int64
	VehicleID  int64
	CenterID   int64

	BookingDate time.Time        // calendar day of the appointment
	StartTime   types.TimeString // slot-of-day, e.g. "10:00"
	Status      BookingStatus

	// Denormalized customer/vehicle data for history
	CustomerName string
	VehiclePlate *string
	Notes        *string

	// Requested slot while status is update_requested, cleared on resolve
	RequestedDate *time.Time
	RequestedTime *types.TimeString

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the booking counts against slot capacity.
// Every non-cancelled booking occupies its slot, including unpaid holds.
func (b *Booking) OccupiesSlot() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if no further transition is legal
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusVisited
}

// CanBeCancelled returns true if the booking can still reach cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPendingPayment || b.Status == StatusUpcoming ||
		b.Status == StatusCancellationRequested
}

// CanBeModified returns true if a reschedule/cancellation request may be opened
func (b *Booking) CanBeModified() bool {
	return b.Status == StatusUpcoming
}

// IsAwaitingApproval returns true if a change request is pending staff resolution
func (b *Booking) IsAwaitingApproval() bool {
	return b.Status == StatusUpdateRequested || b.Status == StatusCancellationRequested
}

// CenterBookingsFilter фильтр для выборки бронирований центра
type CenterBookingsFilter struct {
	CenterID        int64             // Обязательный параметр
	StartDate       *time.Time        // Начало периода (опционально)
	EndDate         *time.Time        // Конец периода (опционально)
	StartTime       *types.TimeString // Фильтр по конкретному слоту (опционально)
	Status          *BookingStatus    // Фильтр по статусу (опционально)
	ExcludeID       *int64            // Исключить бронирование из выборки (для переноса)
	IncludeInactive bool              // Включать ли отменённые бронирования
}
