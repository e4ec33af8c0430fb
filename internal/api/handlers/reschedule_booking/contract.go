package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

type RescheduleBookingUseCase interface {
	Execute(ctx context.Context, userID, bookingID int64, newStartAt time.Time) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
