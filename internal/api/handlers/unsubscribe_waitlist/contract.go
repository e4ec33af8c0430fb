package unsubscribe_waitlist

import "context"

type WaitlistService interface {
	Unsubscribe(ctx context.Context, userID, entryID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
