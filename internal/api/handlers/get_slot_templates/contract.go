package get_slot_templates

import (
	"context"

	"github.com/m04kA/FTV-BookingService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	GetAll(ctx context.Context) (*models.TemplateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
