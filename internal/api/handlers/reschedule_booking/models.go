package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date      string `json:"date"`      // "2026-03-15"
	StartTime string `json:"startTime"` // "15:30"
}

// ParseStartAt собирает новое время начала в таймзоне клуба
func (r *RescheduleBookingRequest) ParseStartAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(
		domain.DateFormat+" "+domain.TimeFormat,
		fmt.Sprintf("%s %s", r.Date, r.StartTime),
		loc,
	)
}
