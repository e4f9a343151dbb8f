package submit_special_booking

import (
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	submitSpecial "github.com/m04kA/FTV-BookingService/internal/usecase/submit_special_booking"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// DocumentRequest метаданные заранее загруженного документа
type DocumentRequest struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	PublicID  string `json:"publicId,omitempty"`
	SizeBytes int64  `json:"sizeBytes,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
}

// SubmitSpecialBookingRequest HTTP request model
type SubmitSpecialBookingRequest struct {
	VisitorName       string            `json:"visitorName"`
	VisitorEmail      string            `json:"visitorEmail"`
	VisitorPhone      string            `json:"visitorPhone"`
	VisitDate         string            `json:"visitDate"` // "2025-12-25"
	TimeSlot          string            `json:"timeSlot"`  // "10:00"
	RequestedCapacity int               `json:"requestedCapacity"`
	Reason            string            `json:"reason"`
	Documents         []DocumentRequest `json:"documents"`
}

// SpecialBookingResponse HTTP response model
type SpecialBookingResponse struct {
	Reference     string `json:"reference"`
	VisitDate     string `json:"visitDate"`
	TimeSlot      string `json:"timeSlot"`
	Status        string `json:"status"`
	SpecialStatus string `json:"specialStatus"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitSpecialBookingRequest) ToUseCaseRequest() (*submitSpecial.Request, error) {
	visitDate, err := time.Parse(domain.DateFormat, r.VisitDate)
	if err != nil {
		return nil, err
	}

	timeSlot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	docs := make([]submitSpecial.Document, 0, len(r.Documents))
	for _, d := range r.Documents {
		docs = append(docs, submitSpecial.Document{
			Name:      d.Name,
			URL:       d.URL,
			PublicID:  d.PublicID,
			SizeBytes: d.SizeBytes,
			MimeType:  d.MimeType,
		})
	}

	return &submitSpecial.Request{
		VisitorName:       r.VisitorName,
		VisitorEmail:      r.VisitorEmail,
		VisitorPhone:      r.VisitorPhone,
		Date:              visitDate,
		TimeSlot:          timeSlot,
		RequestedCapacity: r.RequestedCapacity,
		Reason:            r.Reason,
		Documents:         docs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitSpecial.Response) *SpecialBookingResponse {
	return &SpecialBookingResponse{
		Reference:     resp.Reference,
		VisitDate:     resp.VisitDate.Format(domain.DateFormat),
		TimeSlot:      resp.TimeSlot.String(),
		Status:        resp.Status,
		SpecialStatus: resp.SpecialStatus,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
