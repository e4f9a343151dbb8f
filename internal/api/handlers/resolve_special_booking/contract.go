package resolve_special_booking

import (
	"context"

	resolveSpecial "github.com/m04kA/FTV-BookingService/internal/usecase/resolve_special_booking"
)

type ResolveSpecialBookingUseCase interface {
	Execute(ctx context.Context, req *resolveSpecial.Request) (*resolveSpecial.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
