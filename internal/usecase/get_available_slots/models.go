package get_available_slots

import (
	"time"

	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// Request модель запроса доступности слотов на дату
type Request struct {
	Date time.Time
}

// Slot доступность одного экскурсионного окна
type Slot struct {
	TimeSlot       types.TimeString
	AvailableSpots int
	MaxCapacity    int
}

// Response модель ответа с доступностью всех слотов на дату
type Response struct {
	Date          time.Time
	Closed        bool    // Дата заблокирована календарем
	ClosureReason *string // Причина блокировки (если Closed)
	Slots         []Slot
}
