package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrDateInPast возвращается при запросе доступности на прошедшую дату
	ErrDateInPast = errors.New("get_available_slots: date is in the past")
)
