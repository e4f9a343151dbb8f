package submit_special_booking

import (
	"time"

	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// Document метаданные документа, загруженного во внешнее хранилище
// до отправки заявки. Ядро не работает с содержимым файлов
type Document struct {
	Name      string
	URL       string
	PublicID  string
	SizeBytes int64
	MimeType  string
}

// Request модель заявки на специальное бронирование
type Request struct {
	VisitorName       string
	VisitorEmail      string
	VisitorPhone      string
	Date              time.Time
	TimeSlot          types.TimeString
	RequestedCapacity int    // Должно быть строго больше domain.SpecialRequestThreshold
	Reason            string // Обоснование, минимум domain.MinSpecialReasonLength символов
	Documents         []Document
}

// Response модель ответа с созданной заявкой
type Response struct {
	Reference     string
	VisitDate     time.Time
	TimeSlot      types.TimeString
	Status        string // pending
	SpecialStatus string // pending
	CreatedAt     time.Time
}
