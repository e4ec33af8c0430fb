package notify

import "time"

// Типы событий, отправляемых в шлюз уведомлений
const (
	EventHoldCreated      = "hold_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
	EventBookingReminder  = "booking_reminder"
	EventWaitlistSlotFree = "waitlist_slot_free"
)

// Event событие для шлюза уведомлений
type Event struct {
	Type      string     `json:"type"`
	UserID    int64      `json:"user_id"`
	BookingID *int64     `json:"booking_id,omitempty"`
	StartAt   *time.Time `json:"start_at,omitempty"`
	EndAt     *time.Time `json:"end_at,omitempty"`
	Sims      *int       `json:"sims,omitempty"`
	Price     *int       `json:"price,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	FreeSims  *int       `json:"free_sims,omitempty"`
}
