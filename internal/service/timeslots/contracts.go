package timeslots

import (
	"context"

	"github.com/m04kA/FTV-BookingService/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов слотов
type TemplateRepository interface {
	GetAll(ctx context.Context) ([]*domain.TimeSlotTemplate, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeSlotTemplate, error)
	Update(ctx context.Context, tpl *domain.TimeSlotTemplate) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
