package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateReference возвращается при коллизии номера бронирования
	// (unique-индекс на колонке reference)
	ErrDuplicateReference = errors.New("booking.repository: duplicate booking reference")

	// ErrAlreadyResolved возвращается, когда спец. заявка уже рассмотрена
	// (guard-условие special_status = 'pending' в UPDATE не сработало)
	ErrAlreadyResolved = errors.New("booking.repository: special booking already resolved")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
