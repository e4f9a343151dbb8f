package models

import (
	"errors"
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ListBookingsRequest запрос на получение списка бронирований (админ-консоль)
type ListBookingsRequest struct {
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	TimeSlot        *string    `json:"timeSlot,omitempty"`        // Фильтр по слоту (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	OnlySpecial     bool       `json:"onlySpecial,omitempty"`     // Только специальные заявки
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные и завершенные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		OnlySpecial:     r.OnlySpecial,
		IncludeInactive: r.IncludeInactive,
	}

	if r.TimeSlot != nil {
		slot, err := types.NewTimeStringFromString(*r.TimeSlot)
		if err != nil {
			return filter, err
		}
		filter.TimeSlot = &slot
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// DocumentResponse метаданные документа специальной заявки
type DocumentResponse struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"sizeBytes,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	Reference    string `json:"reference"`
	VisitorName  string `json:"visitorName"`
	VisitorEmail string `json:"visitorEmail"`
	VisitorPhone string `json:"visitorPhone"`
	VisitDate    string `json:"visitDate"` // "2025-12-25"
	TimeSlot     string `json:"timeSlot"`  // "10:00"
	AdultCount   int    `json:"adultCount"`
	ChildCount   int    `json:"childCount"`
	VisitorCount int    `json:"visitorCount"`
	Status       string `json:"status"`

	// Поля специальной заявки
	IsSpecial         bool               `json:"isSpecial"`
	RequestedCapacity *int               `json:"requestedCapacity,omitempty"`
	SpecialReason     *string            `json:"specialReason,omitempty"`
	SpecialStatus     *string            `json:"specialStatus,omitempty"`
	ReviewNotes       *string            `json:"reviewNotes,omitempty"`
	ReviewedBy        *string            `json:"reviewedBy,omitempty"`
	ReviewedAt        *string            `json:"reviewedAt,omitempty"` // ISO 8601
	Documents         []DocumentResponse `json:"documents,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		Reference:          b.Reference,
		VisitorName:        b.VisitorName,
		VisitorEmail:       b.VisitorEmail,
		VisitorPhone:       b.VisitorPhone,
		VisitDate:          b.VisitDate.Format(domain.DateFormat),
		TimeSlot:           b.TimeSlot.String(),
		AdultCount:         b.AdultCount,
		ChildCount:         b.ChildCount,
		VisitorCount:       b.VisitorCount,
		Status:             string(b.Status),
		IsSpecial:          b.IsSpecial,
		RequestedCapacity:  b.RequestedCapacity,
		SpecialReason:      b.SpecialReason,
		ReviewNotes:        b.ReviewNotes,
		ReviewedBy:         b.ReviewedBy,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.SpecialStatus != nil {
		status := string(*b.SpecialStatus)
		resp.SpecialStatus = &status
	}

	if b.ReviewedAt != nil {
		reviewedStr := b.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewedStr
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainDocuments конвертирует список документов в DTO
func FromDomainDocuments(docs []*domain.BookingDocument) []DocumentResponse {
	if len(docs) == 0 {
		return nil
	}

	resp := make([]DocumentResponse, len(docs))
	for i, doc := range docs {
		resp[i] = DocumentResponse{
			Name:      doc.Name,
			URL:       doc.URL,
			SizeBytes: doc.SizeBytes,
			MimeType:  doc.MimeType,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
