package domain

import (
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

// ServiceCenter represents a vehicle-service location.
// Reference data, owned by the admin service; this core only reads it.
type ServiceCenter struct {
	ID   int64
	Name string

	OpenTime  types.TimeString // start of operating hours, e.g. "09:00"
	CloseTime types.TimeString // end of operating hours, e.g. "18:00"

	SlotDurationMinutes   int // step of the slot grid
	MaxConcurrentBookings int // flat capacity per slot, not varying by time-of-day

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWithinOperatingHours reports whether a slot starting at t fits the
// operating window, including its full duration
func (c *ServiceCenter) IsWithinOperatingHours(t types.TimeString) bool {
	if t.IsBefore(c.OpenTime) {
		return false
	}
	end, err := t.AddMinutes(c.SlotDurationMinutes)
	if err != nil {
		return false
	}
	return !end.IsAfter(c.CloseTime)
}

// IsOnSlotGrid reports whether t is aligned to the center's slot grid
func (c *ServiceCenter) IsOnSlotGrid(t types.TimeString) bool {
	open, err := c.OpenTime.Minutes()
	if err != nil {
		return false
	}
	m, err := t.Minutes()
	if err != nil {
		return false
	}
	if m < open || c.SlotDurationMinutes <= 0 {
		return false
	}
	return (m-open)%c.SlotDurationMinutes == 0
}

// SupportsParallelBookings returns true if more than one vehicle fits a slot
func (c *ServiceCenter) SupportsParallelBookings() bool {
	return c.MaxConcurrentBookings > 1
}
