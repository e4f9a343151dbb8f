package submit_special_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/FTV-BookingService/internal/domain"
)

// validateRequest валидирует заявку на специальное бронирование
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.VisitorName) == "" {
		return fmt.Errorf("%w: visitor name is required", ErrInvalidInput)
	}

	if err := validateEmail(req.VisitorEmail); err != nil {
		return err
	}

	if strings.TrimSpace(req.VisitorPhone) == "" {
		return fmt.Errorf("%w: visitor phone is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: visit date is required", ErrInvalidInput)
	}

	if req.TimeSlot.IsZero() {
		return fmt.Errorf("%w: time slot is required", ErrInvalidInput)
	}

	if !domain.IsValidTimeSlot(req.TimeSlot) {
		return fmt.Errorf("%w: unknown time slot %q", ErrInvalidInput, req.TimeSlot)
	}

	// Порог ручного рассмотрения: заявки на меньшие группы идут через
	// обычный допуск
	if req.RequestedCapacity <= domain.SpecialRequestThreshold {
		return fmt.Errorf("%w: requested %d, threshold %d",
			ErrCapacityBelowThreshold, req.RequestedCapacity, domain.SpecialRequestThreshold)
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Reason)) < domain.MinSpecialReasonLength {
		return fmt.Errorf("%w: minimum %d characters", ErrReasonTooShort, domain.MinSpecialReasonLength)
	}

	if err := validateDocuments(req.Documents); err != nil {
		return err
	}

	return nil
}

// validateDocuments проверяет список документов заявки
func validateDocuments(docs []Document) error {
	if len(docs) == 0 {
		return ErrNoDocuments
	}

	if len(docs) > domain.MaxDocumentsPerRequest {
		return fmt.Errorf("%w: maximum %d", ErrTooManyDocuments, domain.MaxDocumentsPerRequest)
	}

	for i, doc := range docs {
		if strings.TrimSpace(doc.Name) == "" {
			return fmt.Errorf("%w: document %d has no name", ErrInvalidInput, i+1)
		}
		if strings.TrimSpace(doc.URL) == "" {
			return fmt.Errorf("%w: document %q has no url", ErrInvalidInput, doc.Name)
		}
	}

	return nil
}

// validateEmail проверяет базовую форму email-адреса
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: visitor email is required", ErrInvalidInput)
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
