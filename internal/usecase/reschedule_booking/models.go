package reschedule_booking

import (
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

// Request модель запроса на одобрение переноса бронирования
type Request struct {
	BookingID int64 // ID бронирования в статусе update_requested
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID          int64            // ID бронирования
	CenterID    int64            // ID центра
	BookingDate time.Time        // Новая дата
	StartTime   types.TimeString // Новое время начала
	Status      string           // Статус (upcoming)
}
