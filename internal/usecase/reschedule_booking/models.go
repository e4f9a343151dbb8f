package reschedule_booking

import (
	"time"

	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
// AdultCount/ChildCount опциональны: nil оставляет состав группы прежним
type Request struct {
	Reference  string
	NewDate    time.Time
	NewSlot    types.TimeString
	AdultCount *int
	ChildCount *int
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	Reference               string
	VisitDate               time.Time
	TimeSlot                types.TimeString
	VisitorCount            int
	Status                  string
	AvailableSpotsRemaining int
}
