package resolve_special_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных или отсутствующих входных данных
	ErrInvalidInput = errors.New("resolve_special_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда заявка с указанным номером не найдена
	ErrBookingNotFound = errors.New("resolve_special_booking: booking not found")

	// ErrNotSpecialBooking возвращается при попытке рассмотреть обычное бронирование
	ErrNotSpecialBooking = errors.New("resolve_special_booking: booking is not a special request")

	// ErrAlreadyResolved возвращается при повторном рассмотрении заявки -
	// первое решение остается в силе
	ErrAlreadyResolved = errors.New("resolve_special_booking: request has already been resolved")

	// ErrBookingNotModifiable возвращается при попытке рассмотреть заявку
	// в терминальном статусе - отозванная посетителем заявка не переоткрывается
	ErrBookingNotModifiable = errors.New("resolve_special_booking: booking is in a terminal state")

	// ErrNotesRequired возвращается, когда администратор не указал комментарий к решению
	ErrNotesRequired = errors.New("resolve_special_booking: review notes are required")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_special_booking: internal error")
)
