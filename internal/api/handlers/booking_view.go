package handlers

import (
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	"github.com/m04kA/SRC-BookingService/pkg/ptr"
)

// BookingView HTTP-представление брони, общее для всех обработчиков.
// Дата и время отдаются в таймзоне клуба.
type BookingView struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	Sims            int     `json:"sims"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           int     `json:"price"`
	Status          string  `json:"status"`
	ClientName      *string `json:"clientName,omitempty"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	ExpiresAt       *string `json:"expiresAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// BookingViewFromDomain конвертирует доменную бронь в HTTP-представление
func BookingViewFromDomain(b *domain.Booking, loc *time.Location) *BookingView {
	view := &BookingView{
		ID:              b.ID,
		UserID:          b.UserID,
		Date:            b.StartAt.In(loc).Format(domain.DateFormat),
		StartTime:       b.StartAt.In(loc).Format(domain.TimeFormat),
		EndTime:         b.EndAt.In(loc).Format(domain.TimeFormat),
		Sims:            b.Sims,
		DurationMinutes: b.DurationMinutes,
		Price:           b.Price,
		Status:          string(b.Status),
		ClientName:      b.ClientName,
		ClientPhone:     b.ClientPhone,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
	if b.ExpiresAt != nil {
		view.ExpiresAt = ptr.Ptr(b.ExpiresAt.Format(time.RFC3339))
	}
	return view
}

// BookingViewsFromDomain конвертирует список броней
func BookingViewsFromDomain(list []*domain.Booking, loc *time.Location) []*BookingView {
	views := make([]*BookingView, 0, len(list))
	for _, b := range list {
		views = append(views, BookingViewFromDomain(b, loc))
	}
	return views
}
