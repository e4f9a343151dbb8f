package resolve_special_booking

import (
	"time"

	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// Decision решение администратора по специальной заявке
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Request модель запроса на рассмотрение специальной заявки
type Request struct {
	Reference  string
	Decision   Decision
	ReviewedBy string // Идентификатор администратора
	Notes      string // Обязательный комментарий к решению
}

// Response модель ответа с результатом рассмотрения
type Response struct {
	Reference     string
	VisitDate     time.Time
	TimeSlot      types.TimeString
	Status        string
	SpecialStatus string
	ReviewedBy    string

	// OrdinaryBookedCount число мест, занятых обычными бронированиями в том же
	// слоте на момент одобрения. Спец. группа не учитывается в леджере, поэтому
	// значение носит справочный характер для администратора
	OrdinaryBookedCount int
}
