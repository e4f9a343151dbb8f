package submit_special_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных или отсутствующих входных данных
	ErrInvalidInput = errors.New("submit_special_booking: invalid input data")

	// ErrCapacityBelowThreshold возвращается, когда запрошенное число мест
	// не превышает порог ручного рассмотрения - такая заявка должна идти
	// через обычное бронирование
	ErrCapacityBelowThreshold = errors.New("submit_special_booking: requested capacity does not exceed special request threshold")

	// ErrReasonTooShort возвращается при слишком коротком обосновании заявки
	ErrReasonTooShort = errors.New("submit_special_booking: request reason is too short")

	// ErrNoDocuments возвращается, когда к заявке не приложен ни один документ
	ErrNoDocuments = errors.New("submit_special_booking: at least one supporting document is required")

	// ErrTooManyDocuments возвращается при превышении лимита документов
	ErrTooManyDocuments = errors.New("submit_special_booking: too many documents")

	// ErrDateInPast возвращается при заявке на прошедшую дату
	ErrDateInPast = errors.New("submit_special_booking: visit date is in the past")

	// ErrDateClosed возвращается, когда дата заблокирована календарем
	ErrDateClosed = errors.New("submit_special_booking: date is closed for visits")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_special_booking: internal error")
)
