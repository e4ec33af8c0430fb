package get_day_schedule

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
	"github.com/m04kA/SRC-BookingService/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/schedule/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day, err := time.ParseInLocation(domain.DateFormat, mux.Vars(r)["date"], h.location)
	if err != nil {
		h.logger.Warn("GET /schedule/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	list, err := h.service.ListDay(r.Context(), day)
	if err != nil {
		h.logger.Error("GET /schedule/{date} - Failed to list day: date=%s, error=%v",
			day.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/{date} - Returned %d bookings for %s", len(list), day.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, handlers.BookingViewsFromDomain(list, h.location))
}
