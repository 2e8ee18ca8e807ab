package create_reception

import (
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
)

// Request модель запроса на создание приёмки
// BookingID nil для walk-in визитов без предварительного бронирования
type Request struct {
	BookingID *int64 // ID бронирования (nil для walk-in)

	// Снимок данных клиента и автомобиля на момент визита
	CustomerID    int64
	CustomerName  string
	CustomerPhone string
	VehicleID     int64
	VehicleModel  string
	VehiclePlate  string
	CenterID      int64

	TechnicianID *int64 // назначенный техник (опционально)
	PackageID    *int64 // выбранный пакет ТО (опционально)
}

// Response модель ответа с созданной приёмкой
type Response struct {
	ID        int64
	BookingID *int64

	CustomerID    int64
	CustomerName  string
	CustomerPhone string
	VehicleID     int64
	VehicleModel  string
	VehiclePlate  string
	CenterID      int64

	TechnicianID *int64
	PackageID    *int64

	Status         string
	RecordsCreated int // Сколько инспекционных записей развернул пакет

	CreatedAt time.Time
}

func newResponse(rec *domain.Reception, recordsCreated int) *Response {
	return &Response{
		ID:             rec.ID,
		BookingID:      rec.BookingID,
		CustomerID:     rec.CustomerID,
		CustomerName:   rec.CustomerName,
		CustomerPhone:  rec.CustomerPhone,
		VehicleID:      rec.VehicleID,
		VehicleModel:   rec.VehicleModel,
		VehiclePlate:   rec.VehiclePlate,
		CenterID:       rec.CenterID,
		TechnicianID:   rec.TechnicianID,
		PackageID:      rec.PackageID,
		Status:         string(rec.Status),
		RecordsCreated: recordsCreated,
		CreatedAt:      rec.CreatedAt,
	}
}
