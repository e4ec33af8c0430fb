package noshow_booking

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
	msgNotFinalizable   = "неявку можно отметить только по закончившейся подтвержденной брони"
	msgNotConfirmed     = "неявку можно отметить только по подтвержденной брони"
	msgTooEarly         = "слот еще не закончился"
)

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

// Handle PATCH /api/v1/bookings/{bookingId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/no-show - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.MarkNoShow(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/no-show - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrNotConfirmed):
			h.logger.Warn("PATCH /bookings/{id}/no-show - Not confirmed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotConfirmed)

		case errors.Is(err, bookings.ErrTooEarly):
			h.logger.Warn("PATCH /bookings/{id}/no-show - Slot not ended: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgTooEarly)

		case errors.Is(err, bookings.ErrNotFinalizable):
			h.logger.Warn("PATCH /bookings/{id}/no-show - Not finalizable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotFinalizable)

		default:
			h.logger.Error("PATCH /bookings/{id}/no-show - Failed to mark no-show: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/no-show - No-show recorded: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, handlers.BookingViewFromDomain(booking, h.location))
}
