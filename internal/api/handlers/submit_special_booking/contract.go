package submit_special_booking

import (
	"context"

	submitSpecial "github.com/m04kA/FTV-BookingService/internal/usecase/submit_special_booking"
)

type SubmitSpecialBookingUseCase interface {
	Execute(ctx context.Context, req *submitSpecial.Request) (*submitSpecial.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
