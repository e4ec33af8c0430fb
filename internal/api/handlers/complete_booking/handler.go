package complete_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
	"github.com/m04kA/SRC-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID брони"
	msgNotFound         = "бронь не найдена"
	msgNotFinalizable   = "визит нельзя закрыть"
	msgNotConfirmed     = "закрыть можно только подтвержденную бронь"
	msgTooEarly         = "слот еще не закончился"
)

// CompleteResponse HTTP response model: бронь и начисленные бонусы
type CompleteResponse struct {
	Booking      *handlers.BookingView `json:"booking"`
	BonusAccrued int                   `json:"bonusAccrued"`
}

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/done
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/done - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, bonus, err := h.service.MarkDone(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/done - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrNotConfirmed):
			h.logger.Warn("PATCH /bookings/{id}/done - Not confirmed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotConfirmed)

		case errors.Is(err, bookings.ErrTooEarly):
			h.logger.Warn("PATCH /bookings/{id}/done - Slot not ended: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgTooEarly)

		case errors.Is(err, bookings.ErrNotFinalizable):
			h.logger.Warn("PATCH /bookings/{id}/done - Not finalizable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotFinalizable)

		default:
			h.logger.Error("PATCH /bookings/{id}/done - Failed to complete: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/done - Booking completed: booking_id=%d, bonus=%d", bookingID, bonus)
	handlers.RespondJSON(w, http.StatusOK, &CompleteResponse{
		Booking:      handlers.BookingViewFromDomain(booking, h.location),
		BonusAccrued: bonus,
	})
}
