package mark_received

import (
	"time"

	createReception "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/create_reception"
)

// Response модель HTTP-ответа с созданной приёмкой
type Response struct {
	ReceptionID    int64     `json:"receptionId"`
	BookingID      *int64    `json:"bookingId,omitempty"`
	CustomerID     int64     `json:"customerId"`
	CustomerName   string    `json:"customerName"`
	VehicleID      int64     `json:"vehicleId"`
	VehiclePlate   string    `json:"vehiclePlate"`
	CenterID       int64     `json:"centerId"`
	TechnicianID   *int64    `json:"technicianId,omitempty"`
	PackageID      *int64    `json:"packageId,omitempty"`
	Status         string    `json:"status"`
	RecordsCreated int       `json:"recordsCreated"`
	CreatedAt      time.Time `json:"createdAt"`
}

func FromUseCaseResponse(resp *createReception.Response) *Response {
	return &Response{
		ReceptionID:    resp.ID,
		BookingID:      resp.BookingID,
		CustomerID:     resp.CustomerID,
		CustomerName:   resp.CustomerName,
		VehicleID:      resp.VehicleID,
		VehiclePlate:   resp.VehiclePlate,
		CenterID:       resp.CenterID,
		TechnicianID:   resp.TechnicianID,
		PackageID:      resp.PackageID,
		Status:         resp.Status,
		RecordsCreated: resp.RecordsCreated,
		CreatedAt:      resp.CreatedAt,
	}
}
