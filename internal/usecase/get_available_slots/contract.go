package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/FTV-BookingService/internal/integrations/calendarservice"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SumSeatsBySlot(ctx context.Context, date time.Time, slot types.TimeString) (int, error)
}

// CalendarClient интерфейс клиента календарного сервиса
type CalendarClient interface {
	GetDateStatus(ctx context.Context, date time.Time) (*calendarservice.DateStatus, error)
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
