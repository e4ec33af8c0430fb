package get_profile

import (
	"context"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

type LoyaltyService interface {
	Profile(ctx context.Context, userID int64, phone *string) (*domain.Client, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
