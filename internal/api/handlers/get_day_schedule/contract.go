package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

type BookingService interface {
	ListDay(ctx context.Context, day time.Time) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
