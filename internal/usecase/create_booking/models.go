package create_booking

import (
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID   int64            // ID клиента
	VehicleID    int64            // ID автомобиля клиента
	CenterID     int64            // ID сервисного центра
	Date         time.Time        // Дата бронирования (без времени)
	StartTime    types.TimeString // Время начала слота (например, "10:00")
	CustomerName string           // Имя клиента (денормализация)
	VehiclePlate *string          // Госномер (денормализация, опционально)
	Notes        *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64            // ID созданного бронирования
	CustomerID  int64            // ID клиента
	VehicleID   int64            // ID автомобиля
	CenterID    int64            // ID центра
	BookingDate time.Time        // Дата бронирования
	StartTime   types.TimeString // Время начала
	Status      string           // Статус бронирования (pending_payment)

	CustomerName string  // Имя клиента
	VehiclePlate *string // Госномер
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
