package resolve_special_booking

import (
	"context"
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	ResolveSpecial(ctx context.Context, id int64, status domain.BookingStatus, specialStatus domain.SpecialStatus, reviewer string, notes string) error
	SumSeatsBySlot(ctx context.Context, date time.Time, slot types.TimeString) (int, error)
}

// Notifier интерфейс фонового диспетчера уведомлений
type Notifier interface {
	Enqueue(task notifier.Task)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
