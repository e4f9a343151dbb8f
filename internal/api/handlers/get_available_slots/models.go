package get_available_slots

import (
	"github.com/m04kA/FTV-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/FTV-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse доступность одного экскурсионного окна
type SlotResponse struct {
	TimeSlot       string `json:"timeSlot"`
	AvailableSpots int    `json:"availableSpots"`
	MaxCapacity    int    `json:"maxCapacity"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date          string         `json:"date"`
	Closed        bool           `json:"closed"`
	ClosureReason *string        `json:"closureReason,omitempty"`
	Slots         []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			TimeSlot:       slot.TimeSlot.String(),
			AvailableSpots: slot.AvailableSpots,
			MaxCapacity:    slot.MaxCapacity,
		}
	}

	return &AvailableSlotsResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		Closed:        resp.Closed,
		ClosureReason: resp.ClosureReason,
		Slots:         slots,
	}
}
