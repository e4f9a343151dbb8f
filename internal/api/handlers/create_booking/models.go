package create_booking

import (
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	createBooking "github.com/m04kA/FTV-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VisitorName  string `json:"visitorName"`
	VisitorEmail string `json:"visitorEmail"`
	VisitorPhone string `json:"visitorPhone"`
	VisitDate    string `json:"visitDate"` // "2025-12-25"
	TimeSlot     string `json:"timeSlot"`  // "10:00"
	AdultCount   int    `json:"adultCount"`
	ChildCount   int    `json:"childCount"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Reference               string `json:"reference"`
	VisitDate               string `json:"visitDate"`
	TimeSlot                string `json:"timeSlot"`
	VisitorCount            int    `json:"visitorCount"`
	Status                  string `json:"status"`
	AvailableSpotsRemaining int    `json:"availableSpotsRemaining"`
	CreatedAt               string `json:"createdAt"`
}

// SlotFullResponse тело ответа 409 при заполненном слоте
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
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	visitDate, err := time.Parse(domain.DateFormat, r.VisitDate)
	if err != nil {
		return nil, err
	}

	timeSlot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		VisitorName:  r.VisitorName,
		VisitorEmail: r.VisitorEmail,
		VisitorPhone: r.VisitorPhone,
		Date:         visitDate,
		TimeSlot:     timeSlot,
		AdultCount:   r.AdultCount,
		ChildCount:   r.ChildCount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		Reference:               resp.Reference,
		VisitDate:               resp.VisitDate.Format(domain.DateFormat),
		TimeSlot:                resp.TimeSlot.String(),
		VisitorCount:            resp.VisitorCount,
		Status:                  resp.Status,
		AvailableSpotsRemaining: resp.AvailableSpotsRemaining,
		CreatedAt:               resp.CreatedAt.Format(time.RFC3339),
	}
}
