package create_booking

import (
	"fmt"
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	if req.CenterID <= 0 {
		return fmt.Errorf("%w: centerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlot проверяет, что слот попадает в рабочие часы центра
// и выровнен по его сетке слотов
func validateSlot(center *domain.ServiceCenter, startTime types.TimeString) error {
	if !center.IsWithinOperatingHours(startTime) {
		return fmt.Errorf("%w: slot %s is outside operating hours %s-%s",
			ErrInvalidTimeSlot, startTime, center.OpenTime, center.CloseTime)
	}

	if !center.IsOnSlotGrid(startTime) {
		return fmt.Errorf("%w: slot %s is not aligned to the %d-minute grid",
			ErrInvalidTimeSlot, startTime, center.SlotDurationMinutes)
	}

	return nil
}

// validateLeadTime проверяет, что до начала слота остаётся не меньше minLeadMinutes
// Слоты в прошлом отклоняются этой же проверкой
func validateLeadTime(bookingDate time.Time, startTime types.TimeString, now time.Time, minLeadMinutes int) error {
	slotStart := startTime.OnDate(bookingDate)

	minAllowedStart := now.Add(time.Duration(minLeadMinutes) * time.Minute)
	if slotStart.Before(minAllowedStart) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minLeadMinutes)
	}

	return nil
}

// countSlotOccupancy подсчитывает бронирования, занимающие указанный слот
// Неоплаченные pending_payment тоже держат место, пока их не снимет sweeper
func countSlotOccupancy(startTime types.TimeString, bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		if !booking.OccupiesSlot() {
			continue
		}
		if booking.StartTime == startTime {
			count++
		}
	}
	return count
}
