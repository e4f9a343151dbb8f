package submit_special_booking

import (
	"context"
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/internal/integrations/calendarservice"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CreateDocuments(ctx context.Context, bookingID int64, docs []*domain.BookingDocument) error
}

// CalendarClient интерфейс клиента календарного сервиса
type CalendarClient interface {
	GetDateStatus(ctx context.Context, date time.Time) (*calendarservice.DateStatus, error)
}

// Notifier интерфейс фонового диспетчера уведомлений
type Notifier interface {
	Enqueue(task notifier.Task)
}

// TransactionManager интерфейс для управления транзакциями
// Спец. заявке не нужна сериализуемая изоляция - она не трогает
// вместимость слотов; нужна только атомарность заявки с документами
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
