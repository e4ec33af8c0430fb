package get_waitlist

import (
	"context"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

type WaitlistService interface {
	ListByUser(ctx context.Context, userID int64) ([]*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
