package domain

import (
	"time"

	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// SpecialStatus represents the review status of a special booking
type SpecialStatus string

const (
	SpecialStatusPending  SpecialStatus = "pending"
	SpecialStatusApproved SpecialStatus = "approved"
	SpecialStatusRejected SpecialStatus = "rejected"
)

// Booking represents a factory tour booking
type Booking struct {
	ID        int64
	Reference string // Публичный номер бронирования, выдается посетителю

	VisitorName  string
	VisitorEmail string
	VisitorPhone string

	VisitDate    time.Time
	TimeSlot     types.TimeString
	AdultCount   int
	ChildCount   int
	VisitorCount int // AdultCount + ChildCount, фиксируется при создании

	Status BookingStatus

	// Поля специальной заявки (заполнены только при IsSpecial = true)
	IsSpecial         bool
	RequestedCapacity *int
	SpecialReason     *string
	SpecialStatus     *SpecialStatus
	ReviewNotes       *string
	ReviewedBy        *string
	ReviewedAt        *time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies slot capacity
// Only pending and confirmed bookings count against the ledger
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsResolved returns true if a special booking has been approved or rejected
func (b *Booking) IsResolved() bool {
	return b.SpecialStatus != nil && *b.SpecialStatus != SpecialStatusPending
}

// SeatCount returns the number of seats the booking occupies on its slot.
// Special bookings are capacity-exempt and never occupy ledger seats
func (b *Booking) SeatCount() int {
	if b.IsSpecial {
		return 0
	}
	return b.VisitorCount
}

// BookingDocument represents metadata of a supporting document attached
// to a special booking. Files live in external storage, only metadata is kept
type BookingDocument struct {
	ID        int64
	BookingID int64
	Name      string
	URL       string
	PublicID  string
	SizeBytes int64
	MimeType  string
	CreatedAt time.Time
}

// NotificationChannel канал доставки уведомления
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// NotificationRecord append-only запись о попытке отправки уведомления
// Используется только для аудита, не участвует в бизнес-логике
type NotificationRecord struct {
	ID          int64
	BookingID   int64
	Channel     NotificationChannel
	Template    string
	Recipient   string
	Delivered   bool
	Detail      *string
	AttemptedAt time.Time
}

// BookingsFilter фильтр для получения списка бронирований (админ-консоль)
type BookingsFilter struct {
	StartDate       *time.Time        // Начало периода (опционально)
	EndDate         *time.Time        // Конец периода (опционально)
	TimeSlot        *types.TimeString // Фильтр по слоту (опционально)
	Status          *BookingStatus    // Фильтр по статусу (опционально)
	OnlySpecial     bool              // Только специальные заявки
	IncludeInactive bool              // Включать ли отмененные и завершенные
}
