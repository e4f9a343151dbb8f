package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.VisitorName) == "" {
		return fmt.Errorf("%w: visitor name is required", ErrInvalidInput)
	}

	if len(req.VisitorName) > domain.MaxVisitorNameLength {
		return fmt.Errorf("%w: visitor name is too long", ErrInvalidInput)
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

// validateVisitorCount проверяет число посетителей
// Группы больше MaxVisitorsPerBooking не проходят через обычный допуск -
// для них предусмотрен процесс специального бронирования
func validateVisitorCount(req *Request) error {
	if req.AdultCount < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrInvalidVisitorCount)
	}

	if req.ChildCount < 0 {
		return fmt.Errorf("%w: child count cannot be negative", ErrInvalidVisitorCount)
	}

	if req.TotalVisitors() > domain.MaxVisitorsPerBooking {
		return ErrVisitorCountTooLarge
	}

	return nil
}

// sumSeats суммирует занятые места по активным бронированиям слота
func sumSeats(bookings []*domain.Booking) int {
	total := 0
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		total += b.SeatCount()
	}
	return total
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
