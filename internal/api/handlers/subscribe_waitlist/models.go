package subscribe_waitlist

import (
	"fmt"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	waitlistService "github.com/m04kA/SRC-BookingService/internal/service/waitlist"
)

// SubscribeRequest HTTP request model подписки
type SubscribeRequest struct {
	Date            string `json:"date"`      // "2026-03-15"
	StartTime       string `json:"startTime"` // "15:30"
	DurationMinutes int    `json:"durationMinutes"`
	Sims            int    `json:"sims"`
}

// WaitlistEntryView HTTP-представление подписки
type WaitlistEntryView struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Sims      int    `json:"sims"`
	Active    bool   `json:"active"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SubscribeRequest) ToServiceRequest(loc *time.Location) (waitlistService.SubscribeRequest, error) {
	startAt, err := time.ParseInLocation(
		domain.DateFormat+" "+domain.TimeFormat,
		fmt.Sprintf("%s %s", r.Date, r.StartTime),
		loc,
	)
	if err != nil {
		return waitlistService.SubscribeRequest{}, err
	}

	return waitlistService.SubscribeRequest{
		StartAt:         startAt,
		DurationMinutes: r.DurationMinutes,
		SimsNeeded:      r.Sims,
	}, nil
}

// ViewFromDomain конвертирует подписку в HTTP-представление
func ViewFromDomain(e *domain.WaitlistEntry, loc *time.Location) *WaitlistEntryView {
	return &WaitlistEntryView{
		ID:        e.ID,
		Date:      e.StartAt.In(loc).Format(domain.DateFormat),
		StartTime: e.StartAt.In(loc).Format(domain.TimeFormat),
		EndTime:   e.EndAt.In(loc).Format(domain.TimeFormat),
		Sims:      e.SimsNeeded,
		Active:    e.Active,
	}
}
