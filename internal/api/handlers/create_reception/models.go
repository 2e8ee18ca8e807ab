package create_reception

import (
	"time"

	createReception "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/create_reception"
)

// CreateRequest модель HTTP-запроса на создание walk-in приёмки
type CreateRequest struct {
	BookingID     *int64 `json:"bookingId,omitempty"`
	CustomerID    int64  `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	VehicleID     int64  `json:"vehicleId"`
	VehicleModel  string `json:"vehicleModel,omitempty"`
	VehiclePlate  string `json:"vehiclePlate"`
	CenterID      int64  `json:"centerId"`
	TechnicianID  *int64 `json:"technicianId,omitempty"`
	PackageID     *int64 `json:"packageId,omitempty"`
}

func (r *CreateRequest) ToUseCaseRequest() *createReception.Request {
	return &createReception.Request{
		BookingID:     r.BookingID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		VehicleID:     r.VehicleID,
		VehicleModel:  r.VehicleModel,
		VehiclePlate:  r.VehiclePlate,
		CenterID:      r.CenterID,
		TechnicianID:  r.TechnicianID,
		PackageID:     r.PackageID,
	}
}

// CreateResponse модель HTTP-ответа с созданной приёмкой
type CreateResponse struct {
	ID             int64     `json:"id"`
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

func FromUseCaseResponse(resp *createReception.Response) *CreateResponse {
	return &CreateResponse{
		ID:             resp.ID,
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

// RecoverResponse модель HTTP-ответа восстановления записей инспекции
type RecoverResponse struct {
	ReceptionID    int64 `json:"receptionId"`
	RecordsCreated int   `json:"recordsCreated"`
}
