package get_free_slots

import (
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	getFreeSlots "github.com/m04kA/SRC-BookingService/internal/usecase/get_free_slots"
)

// SlotView слот сетки в HTTP-ответе
type SlotView struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	FreeSims  int    `json:"freeSims"`
}

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	Date  string     `json:"date"`
	Slots []SlotView `json:"slots"`
}

// FromUseCaseResult конвертирует результат use case в HTTP response
func FromUseCaseResult(result *getFreeSlots.Result, loc *time.Location) *FreeSlotsResponse {
	resp := &FreeSlotsResponse{
		Date:  result.Day.In(loc).Format(domain.DateFormat),
		Slots: make([]SlotView, 0, len(result.Slots)),
	}
	for _, s := range result.Slots {
		resp.Slots = append(resp.Slots, SlotView{
			StartTime: s.StartAt.In(loc).Format(domain.TimeFormat),
			EndTime:   s.EndAt.In(loc).Format(domain.TimeFormat),
			FreeSims:  s.FreeSims,
		})
	}
	return resp
}
