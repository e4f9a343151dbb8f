package reschedule_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных или отсутствующих входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrBookingNotModifiable возвращается при попытке перенести бронирование
	// в терминальном статусе (отменено или завершено)
	ErrBookingNotModifiable = errors.New("reschedule_booking: booking can no longer be modified")

	// ErrVisitorCountTooLarge возвращается, когда новая группа не помещается в слот
	ErrVisitorCountTooLarge = errors.New("reschedule_booking: visitor count exceeds slot capacity, use special booking request")

	// ErrDateInPast возвращается при переносе на прошедшую дату
	ErrDateInPast = errors.New("reschedule_booking: visit date is in the past")

	// ErrDateClosed возвращается, когда целевая дата заблокирована календарем
	ErrDateClosed = errors.New("reschedule_booking: date is closed for visits")

	// ErrSlotFull возвращается, когда в целевом слоте недостаточно мест
	ErrSlotFull = errors.New("reschedule_booking: slot is full")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)

// SlotFullError несет число оставшихся мест в целевом слоте
type SlotFullError struct {
	AvailableSpots int
}

func (e *SlotFullError) Error() string {
	return fmt.Sprintf("%v: %d spots available", ErrSlotFull, e.AvailableSpots)
}

// Unwrap позволяет errors.Is(err, ErrSlotFull)
func (e *SlotFullError) Unwrap() error {
	return ErrSlotFull
}

// DateClosedError несет причину блокировки даты
type DateClosedError struct {
	Reason string
}

func (e *DateClosedError) Error() string {
	if e.Reason == "" {
		return ErrDateClosed.Error()
	}
	return fmt.Sprintf("%v: %s", ErrDateClosed, e.Reason)
}

// Unwrap позволяет errors.Is(err, ErrDateClosed)
func (e *DateClosedError) Unwrap() error {
	return ErrDateClosed
}
