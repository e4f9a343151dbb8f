package create_booking

import (
	"time"

	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// Request модель запроса на создание обычного бронирования
type Request struct {
	VisitorName  string           // Имя посетителя
	VisitorEmail string           // Email для подтверждения
	VisitorPhone string           // Телефон для SMS
	Date         time.Time        // Дата визита (без времени)
	TimeSlot     types.TimeString // Экскурсионное окно (например, "10:00")
	AdultCount   int              // Число взрослых (минимум 1)
	ChildCount   int              // Число детей
}

// TotalVisitors возвращает общее число посетителей в заявке
func (r *Request) TotalVisitors() int {
	return r.AdultCount + r.ChildCount
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reference               string           // Публичный номер бронирования
	VisitDate               time.Time        // Дата визита
	TimeSlot                types.TimeString // Экскурсионное окно
	VisitorCount            int              // Число посетителей
	Status                  string           // Статус (confirmed)
	AvailableSpotsRemaining int              // Остаток мест в слоте после бронирования
	CreatedAt               time.Time        // Время создания
}
