package get_slot_usage

import (
	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	getSlotUsage "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/get_slot_usage"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	OccupiedSpots   int    `json:"occupiedSpots"`
	TotalSpots      int    `json:"totalSpots"`
	IsCurrent       bool   `json:"isCurrent"`
}

// SlotUsageResponse HTTP модель занятости слотов на дату
type SlotUsageResponse struct {
	CenterID int64          `json:"centerId"`
	Date     string         `json:"date"` // "2026-09-15"
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotUsage.Response) *SlotUsageResponse {
	result := &SlotUsageResponse{
		CenterID: resp.CenterID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			OccupiedSpots:   slot.OccupiedSpots,
			TotalSpots:      slot.TotalSpots,
			IsCurrent:       slot.IsCurrent,
		})
	}
	return result
}
