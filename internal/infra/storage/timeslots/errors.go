package timeslots

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон слота не найден
	ErrTemplateNotFound = errors.New("timeslots.repository: slot template not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeslots.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeslots.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeslots.repository: failed to scan row")
)
