package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/internal/integrations/calendarservice"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveBySlot(ctx context.Context, date time.Time, slot types.TimeString, excludeID *int64) ([]*domain.Booking, error)
}

// CalendarClient интерфейс клиента календарного сервиса (оракул закрытых дат)
type CalendarClient interface {
	GetDateStatus(ctx context.Context, date time.Time) (*calendarservice.DateStatus, error)
}

// Notifier интерфейс фонового диспетчера уведомлений
type Notifier interface {
	Enqueue(task notifier.Task)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
