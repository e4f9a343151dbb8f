package domain

import (
	"time"

	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// SlotAvailability represents the remaining capacity of one tour slot
type SlotAvailability struct {
	Date           time.Time
	TimeSlot       types.TimeString
	AvailableSpots int
	MaxCapacity    int
}

// IsFull returns true if the slot has no available spots
func (s *SlotAvailability) IsFull() bool {
	return s.AvailableSpots <= 0
}

// IsFullyAvailable returns true if no seats are taken
func (s *SlotAvailability) IsFullyAvailable() bool {
	return s.AvailableSpots == s.MaxCapacity
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *SlotAvailability) OccupancyRate() float64 {
	if s.MaxCapacity == 0 {
		return 0
	}
	occupied := s.MaxCapacity - s.AvailableSpots
	return float64(occupied) / float64(s.MaxCapacity) * 100
}
