package create_block

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
	"github.com/m04kA/SRC-BookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные параметры техперерыва"
	msgNoCapacity         = "на выбранное время недостаточно свободных симуляторов"
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

// Handle POST /api/v1/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	iv, err := req.ToInterval(h.location)
	if err != nil {
		h.logger.Warn("POST /blocks - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	block, err := h.service.CreateBlock(r.Context(), iv, req.Sims)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookings.ErrCapacityExceeded):
			h.logger.Warn("POST /blocks - Capacity exceeded: start=%s, sims=%d", req.StartTime, req.Sims)
			handlers.RespondError(w, http.StatusConflict, msgNoCapacity)

		default:
			h.logger.Error("POST /blocks - Failed to create block: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocks - Block created: block_id=%d, sims=%d", block.ID, block.Sims)
	handlers.RespondJSON(w, http.StatusCreated, handlers.BookingViewFromDomain(block, h.location))
}
