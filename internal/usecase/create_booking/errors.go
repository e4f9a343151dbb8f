package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных или отсутствующих входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidVisitorCount возвращается при некорректном числе посетителей
	ErrInvalidVisitorCount = errors.New("create_booking: invalid visitor count")

	// ErrVisitorCountTooLarge возвращается, когда группа не помещается в слот -
	// такие заявки идут через процесс специального бронирования
	ErrVisitorCountTooLarge = errors.New("create_booking: visitor count exceeds slot capacity, use special booking request")

	// ErrDateInPast возвращается при попытке бронирования на прошедшую дату
	ErrDateInPast = errors.New("create_booking: visit date is in the past")

	// ErrDateClosed возвращается, когда дата заблокирована календарем
	// (производственное закрытие или праздник)
	ErrDateClosed = errors.New("create_booking: date is closed for visits")

	// ErrSlotFull возвращается, когда в слоте недостаточно свободных мест
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotFullError несет число оставшихся мест, чтобы вызывающий мог
// показать посетителю остаток без повторного запроса
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
