package confirm_booking

import (
	"context"

	confirmBooking "github.com/m04kA/SRC-BookingService/internal/usecase/confirm_booking"
)

type ConfirmBookingUseCase interface {
	Execute(ctx context.Context, bookingID int64) (*confirmBooking.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
