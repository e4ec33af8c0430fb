package get_booking

import (
	"context"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

type BookingService interface {
	GetByID(ctx context.Context, actorID int64, isStaff bool, id int64) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
