package create_block

import (
	"fmt"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

// CreateBlockRequest HTTP request model техперерыва
type CreateBlockRequest struct {
	Date            string `json:"date"`      // "2026-03-15"
	StartTime       string `json:"startTime"` // "15:30"
	DurationMinutes int    `json:"durationMinutes"`
	Sims            int    `json:"sims"`
}

// ToInterval собирает интервал техперерыва в таймзоне клуба
func (r *CreateBlockRequest) ToInterval(loc *time.Location) (domain.Interval, error) {
	startAt, err := time.ParseInLocation(
		domain.DateFormat+" "+domain.TimeFormat,
		fmt.Sprintf("%s %s", r.Date, r.StartTime),
		loc,
	)
	if err != nil {
		return domain.Interval{}, err
	}
	return domain.NewInterval(startAt, r.DurationMinutes), nil
}
