package waitlist

import "time"

// SubscribeRequest запрос подписки на освобождение окна
type SubscribeRequest struct {
	StartAt         time.Time
	DurationMinutes int
	SimsNeeded      int
}
