package confirm_booking

import (
	"time"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
	confirmBooking "github.com/m04kA/SRC-BookingService/internal/usecase/confirm_booking"
)

// ConfirmResponse HTTP response model: исход подтверждения и бронь
type ConfirmResponse struct {
	Outcome string                `json:"outcome"`
	Booking *handlers.BookingView `json:"booking,omitempty"`
}

// FromUseCaseResult конвертирует результат use case в HTTP response
func FromUseCaseResult(result *confirmBooking.Result, loc *time.Location) *ConfirmResponse {
	resp := &ConfirmResponse{Outcome: string(result.Outcome)}
	if result.Booking != nil {
		resp.Booking = handlers.BookingViewFromDomain(result.Booking, loc)
	}
	return resp
}
