package domain

import "github.com/m04kA/FTV-BookingService/pkg/types"

// Capacity constants
const (
	// MaxCapacityPerSlot вместимость одного экскурсионного слота
	// Общая константа для всех дат и слотов; настройки в time_slot_templates
	// используются только для отображения и админки
	MaxCapacityPerSlot = 30

	// MaxVisitorsPerBooking максимальное число посетителей в обычном
	// бронировании; заявки большего размера идут через спец. процесс
	MaxVisitorsPerBooking = MaxCapacityPerSlot

	// SpecialRequestThreshold порог обязательного ручного рассмотрения:
	// спец. заявка требует requested_capacity строго больше этого значения.
	// Не выводится из MaxCapacityPerSlot - это независимый бизнес-порог
	SpecialRequestThreshold = 100

	// MinSpecialReasonLength минимальная длина обоснования спец. заявки
	MinSpecialReasonLength = 50
)

// Business validation constants
const (
	MaxVisitorNameLength        = 200
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	MaxDocumentsPerRequest      = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TimeSlots фиксированный набор экскурсионных окон в течение дня
var TimeSlots = []types.TimeString{
	"10:00",
	"11:30",
	"14:00",
	"15:30",
}

// IsValidTimeSlot проверяет, что слот входит в фиксированный набор
func IsValidTimeSlot(slot types.TimeString) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// ActiveStatuses статусы, при которых бронирование занимает места в слоте
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, при которых бронирование не занимает места
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
