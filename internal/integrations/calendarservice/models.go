package calendarservice

// BlockedKind тип блокировки даты
type BlockedKind string

const (
	KindClosure BlockedKind = "closure"
	KindHoliday BlockedKind = "holiday"
)

// DateStatus ответ календарного сервиса по одной дате
// Дата с Blocked = true категорически недоступна для бронирования
// независимо от остатка мест в слотах
type DateStatus struct {
	Date    string       `json:"date"` // YYYY-MM-DD
	Blocked bool         `json:"blocked"`
	Reason  *string      `json:"reason,omitempty"`
	Kind    *BlockedKind `json:"kind,omitempty"`
}

// ErrorResponse модель ошибки от календарного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
