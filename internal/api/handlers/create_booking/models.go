package create_booking

import (
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	createBooking "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/create_booking"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VehicleID    int64   `json:"vehicleId"`
	CenterID     int64   `json:"centerId"`
	BookingDate  string  `json:"bookingDate"` // "2026-09-15"
	StartTime    string  `json:"startTime"`   // "10:00"
	CustomerName string  `json:"customerName"`
	VehiclePlate *string `json:"vehiclePlate,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	CustomerID   int64   `json:"customerId"`
	VehicleID    int64   `json:"vehicleId"`
	CenterID     int64   `json:"centerId"`
	BookingDate  string  `json:"bookingDate"`
	StartTime    string  `json:"startTime"`
	Status       string  `json:"status"`
	CustomerName string  `json:"customerName"`
	VehiclePlate *string `json:"vehiclePlate,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:   customerID,
		VehicleID:    r.VehicleID,
		CenterID:     r.CenterID,
		Date:         bookingDate,
		StartTime:    startTime,
		CustomerName: r.CustomerName,
		VehiclePlate: r.VehiclePlate,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		CustomerID:   resp.CustomerID,
		VehicleID:    resp.VehicleID,
		CenterID:     resp.CenterID,
		BookingDate:  resp.BookingDate.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		Status:       resp.Status,
		CustomerName: resp.CustomerName,
		VehiclePlate: resp.VehiclePlate,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
