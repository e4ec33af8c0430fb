package create_block

import (
	"context"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

type BookingService interface {
	CreateBlock(ctx context.Context, iv domain.Interval, sims int) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
