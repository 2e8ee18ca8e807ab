package domain

import "github.com/no-solace/ev-maintenance-system-sub001/pkg/types"

// SlotUsage describes the occupancy of one time slot at a center
type SlotUsage struct {
	StartTime       types.TimeString
	DurationMinutes int
	OccupiedSpots   int // non-cancelled bookings at the slot
	TotalSpots      int // center capacity
	IsCurrent       bool // wall clock is inside [start, end)
}

// IsFull returns true if the slot has no headroom left
func (s *SlotUsage) IsFull() bool {
	return s.OccupiedSpots >= s.TotalSpots
}

// AvailableSpots returns the remaining headroom, never negative
func (s *SlotUsage) AvailableSpots() int {
	if s.OccupiedSpots >= s.TotalSpots {
		return 0
	}
	return s.TotalSpots - s.OccupiedSpots
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *SlotUsage) OccupancyRate() float64 {
	if s.TotalSpots == 0 {
		return 0
	}
	return float64(s.OccupiedSpots) / float64(s.TotalSpots) * 100
}
