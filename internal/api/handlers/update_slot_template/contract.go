package update_slot_template

import (
	"context"

	"github.com/m04kA/FTV-BookingService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	Update(ctx context.Context, id int64, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
