package complete_booking

import (
	"context"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

type BookingService interface {
	MarkDone(ctx context.Context, id int64) (*domain.Booking, int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
