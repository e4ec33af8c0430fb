package subscribe_waitlist

import (
	"context"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	waitlistService "github.com/m04kA/SRC-BookingService/internal/service/waitlist"
)

type WaitlistService interface {
	Subscribe(ctx context.Context, userID int64, req waitlistService.SubscribeRequest) (*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
