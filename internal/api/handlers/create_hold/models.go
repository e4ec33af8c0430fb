package create_hold

import (
	"fmt"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	createHold "github.com/m04kA/SRC-BookingService/internal/usecase/create_hold"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	Date            string  `json:"date"`      // "2026-03-15"
	StartTime       string  `json:"startTime"` // "15:30"
	DurationMinutes int     `json:"durationMinutes"`
	Sims            int     `json:"sims"`
	ClientName      *string `json:"clientName,omitempty"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	BonusSpend      int     `json:"bonusSpend,omitempty"` // сколько бонусов списать в счет оплаты
}

// HoldResponse HTTP response model
type HoldResponse struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Sims       int    `json:"sims"`
	Price      int    `json:"price"`
	BonusSpent int    `json:"bonusSpent,omitempty"`
	ExpiresAt  string `json:"expiresAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата и время интерпретируются в таймзоне клуба.
func (r *CreateHoldRequest) ToUseCaseRequest(userID int64, loc *time.Location) (createHold.Request, error) {
	startAt, err := time.ParseInLocation(
		domain.DateFormat+" "+domain.TimeFormat,
		fmt.Sprintf("%s %s", r.Date, r.StartTime),
		loc,
	)
	if err != nil {
		return createHold.Request{}, err
	}

	return createHold.Request{
		UserID:          userID,
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		StartAt:         startAt,
		DurationMinutes: r.DurationMinutes,
		Sims:            r.Sims,
		BonusSpend:      r.BonusSpend,
	}, nil
}

// FromUseCaseResult конвертирует результат use case в HTTP response
func FromUseCaseResult(result *createHold.Result, loc *time.Location) *HoldResponse {
	return &HoldResponse{
		ID:         result.BookingID,
		Date:       result.StartAt.In(loc).Format(domain.DateFormat),
		StartTime:  result.StartAt.In(loc).Format(domain.TimeFormat),
		EndTime:    result.EndAt.In(loc).Format(domain.TimeFormat),
		Sims:       result.Sims,
		Price:      result.Price,
		BonusSpent: result.BonusSpent,
		ExpiresAt:  result.ExpiresAt.Format(time.RFC3339),
	}
}
