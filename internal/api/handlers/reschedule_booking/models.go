package reschedule_booking

import (
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	rescheduleBooking "github.com/m04kA/FTV-BookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
// adultCount/childCount опциональны, отсутствие сохраняет прежний состав группы
type RescheduleBookingRequest struct {
	NewDate    string `json:"newDate"` // "2025-12-26"
	NewSlot    string `json:"newSlot"` // "14:00"
	AdultCount *int   `json:"adultCount,omitempty"`
	ChildCount *int   `json:"childCount,omitempty"`
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	Reference               string `json:"reference"`
	VisitDate               string `json:"visitDate"`
	TimeSlot                string `json:"timeSlot"`
	VisitorCount            int    `json:"visitorCount"`
	Status                  string `json:"status"`
	AvailableSpotsRemaining int    `json:"availableSpotsRemaining"`
}

// SlotFullResponse тело ответа 409 при заполненном целевом слоте
type SlotFullResponse struct {
	Error          string `json:"error"`
	AvailableSpots int    `json:"availableSpots"`
}

// DateClosedResponse тело ответа 409 при закрытой дате
type DateClosedResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(reference string) (*rescheduleBooking.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newSlot, err := types.NewTimeStringFromString(r.NewSlot)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		Reference:  reference,
		NewDate:    newDate,
		NewSlot:    newSlot,
		AdultCount: r.AdultCount,
		ChildCount: r.ChildCount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		Reference:               resp.Reference,
		VisitDate:               resp.VisitDate.Format(domain.DateFormat),
		TimeSlot:                resp.TimeSlot.String(),
		VisitorCount:            resp.VisitorCount,
		Status:                  resp.Status,
		AvailableSpotsRemaining: resp.AvailableSpotsRemaining,
	}
}
