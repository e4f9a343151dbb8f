package resolve_special_booking

import (
	"github.com/m04kA/FTV-BookingService/internal/domain"
	resolveSpecial "github.com/m04kA/FTV-BookingService/internal/usecase/resolve_special_booking"
)

// ResolveSpecialBookingRequest HTTP request model
type ResolveSpecialBookingRequest struct {
	Decision string `json:"decision"` // "approve" или "reject"
	Notes    string `json:"notes"`
}

// ResolveSpecialBookingResponse HTTP response model
type ResolveSpecialBookingResponse struct {
	Reference           string `json:"reference"`
	VisitDate           string `json:"visitDate"`
	TimeSlot            string `json:"timeSlot"`
	Status              string `json:"status"`
	SpecialStatus       string `json:"specialStatus"`
	ReviewedBy          string `json:"reviewedBy"`
	OrdinaryBookedCount int    `json:"ordinaryBookedCount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ResolveSpecialBookingRequest) ToUseCaseRequest(reference, reviewedBy string) *resolveSpecial.Request {
	return &resolveSpecial.Request{
		Reference:  reference,
		Decision:   resolveSpecial.Decision(r.Decision),
		ReviewedBy: reviewedBy,
		Notes:      r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveSpecial.Response) *ResolveSpecialBookingResponse {
	return &ResolveSpecialBookingResponse{
		Reference:           resp.Reference,
		VisitDate:           resp.VisitDate.Format(domain.DateFormat),
		TimeSlot:            resp.TimeSlot.String(),
		Status:              resp.Status,
		SpecialStatus:       resp.SpecialStatus,
		ReviewedBy:          resp.ReviewedBy,
		OrdinaryBookedCount: resp.OrdinaryBookedCount,
	}
}
