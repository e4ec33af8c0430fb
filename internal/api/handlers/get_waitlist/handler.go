package get_waitlist

import (
	"net/http"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
	"github.com/m04kA/SRC-BookingService/internal/api/handlers/subscribe_waitlist"
	"github.com/m04kA/SRC-BookingService/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
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

// Handle GET /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /waitlist - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	entries, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /waitlist - Failed to list entries: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	views := make([]*subscribe_waitlist.WaitlistEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, subscribe_waitlist.ViewFromDomain(e, h.location))
	}

	h.logger.Info("GET /waitlist - Returned %d entries: user_id=%d", len(views), userID)
	handlers.RespondJSON(w, http.StatusOK, views)
}
