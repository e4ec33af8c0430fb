package get_user_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
	"github.com/m04kA/SRC-BookingService/internal/api/middleware"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/users/{userId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	targetID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// чужие брони видят только сотрудники
	if targetID != actorID && !middleware.IsStaff(r.Context()) {
		h.logger.Warn("GET /users/{id}/bookings - Access denied: target=%d, actor=%d", targetID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	list, err := h.service.ListByUser(r.Context(), targetID)
	if err != nil {
		h.logger.Error("GET /users/{id}/bookings - Failed to list bookings: user_id=%d, error=%v", targetID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{id}/bookings - Returned %d bookings: user_id=%d", len(list), targetID)
	handlers.RespondJSON(w, http.StatusOK, handlers.BookingViewsFromDomain(list, h.location))
}
