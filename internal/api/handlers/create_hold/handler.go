package create_hold

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
	"github.com/m04kA/SRC-BookingService/internal/api/middleware"
	createHold "github.com/m04kA/SRC-BookingService/internal/usecase/create_hold"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры заявки"
	msgOutsideHours       = "выбранное время вне часов работы клуба"
	msgNoCapacity         = "на выбранное время нет свободных симуляторов"
	msgTooManyBookings    = "превышен лимит активных заявок"
)

type Handler struct {
	useCase  CreateHoldUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateHoldUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createHold.ErrOutsideBusinessHours):
			h.logger.Warn("POST /bookings - Outside business hours: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createHold.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: user_id=%d, start=%s, sims=%d",
				userID, req.StartTime, req.Sims)
			handlers.RespondError(w, http.StatusConflict, msgNoCapacity)

		case errors.Is(err, createHold.ErrTooManyBookings):
			h.logger.Warn("POST /bookings - Too many active bookings: user_id=%d", userID)
			handlers.RespondError(w, http.StatusConflict, msgTooManyBookings)

		default:
			h.logger.Error("POST /bookings - Failed to create hold: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Hold created: booking_id=%d, user_id=%d", result.BookingID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResult(result, h.location))
}
