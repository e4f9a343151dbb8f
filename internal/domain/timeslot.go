package domain

import (
	"time"

	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// TimeSlotTemplate represents an admin-managed slot record
// Used by the admin console and the public site for display purposes.
// Admission arithmetic deliberately ignores Capacity here and uses the
// global MaxCapacityPerSlot constant (see constants.go)
type TimeSlotTemplate struct {
	ID        int64
	StartTime types.TimeString
	EndTime   types.TimeString
	Label     string
	Capacity  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the slot length in minutes, or 0 when times are malformed
func (t *TimeSlotTemplate) Duration() int {
	start, err := time.Parse(TimeFormat, t.StartTime.String())
	if err != nil {
		return 0
	}
	end, err := time.Parse(TimeFormat, t.EndTime.String())
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Minutes())
}
