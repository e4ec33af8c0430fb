package get_availability

import (
	"context"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

type AvailabilityService interface {
	FreeCapacity(ctx context.Context, iv domain.Interval, excludeID *int64) (int, error)
	MaxSims() int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
