package subscribe_waitlist

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
	"github.com/m04kA/SRC-BookingService/internal/api/middleware"
	waitlistService "github.com/m04kA/SRC-BookingService/internal/service/waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры подписки"
	msgOutsideHours       = "выбранное время вне часов работы клуба"
)

type Handler struct {
	service  WaitlistService
	location *time.Location
	logger   Logger
}

func NewHandler(service WaitlistService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /waitlist - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SubscribeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /waitlist - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	entry, err := h.service.Subscribe(r.Context(), userID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, waitlistService.ErrInvalidInput):
			h.logger.Warn("POST /waitlist - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, waitlistService.ErrOutsideBusinessHours):
			h.logger.Warn("POST /waitlist - Outside business hours: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		default:
			h.logger.Error("POST /waitlist - Failed to subscribe: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - Subscribed: entry_id=%d, user_id=%d", entry.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, ViewFromDomain(entry, h.location))
}
