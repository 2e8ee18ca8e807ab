package resolve_reschedule

import (
	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	rescheduleBooking "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/reschedule_booking"
)

// ApproveResponse модель HTTP-ответа на одобрение переноса
type ApproveResponse struct {
	ID          int64  `json:"id"`
	CenterID    int64  `json:"centerId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	Status      string `json:"status"`
}

func FromUseCaseResponse(resp *rescheduleBooking.Response) *ApproveResponse {
	return &ApproveResponse{
		ID:          resp.ID,
		CenterID:    resp.CenterID,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		StartTime:   string(resp.StartTime),
		Status:      resp.Status,
	}
}
