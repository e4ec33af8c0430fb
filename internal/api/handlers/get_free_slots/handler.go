package get_free_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
	"github.com/m04kA/SRC-BookingService/internal/domain"
	getFreeSlots "github.com/m04kA/SRC-BookingService/internal/usecase/get_free_slots"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность"
	msgInvalidSims     = "некорректное число симуляторов"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase  GetFreeSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetFreeSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD&durationMinutes=60&sims=1
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	day, err := time.ParseInLocation(domain.DateFormat, query.Get("date"), h.location)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	durationMinutes, err := strconv.Atoi(query.Get("durationMinutes"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	sims := 1
	if raw := query.Get("sims"); raw != "" {
		sims, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid sims: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSims)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), getFreeSlots.Request{
		Day:             day,
		DurationMinutes: durationMinutes,
		SimsNeeded:      sims,
	})
	if err != nil {
		switch {
		case errors.Is(err, getFreeSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /slots - Failed to get slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Returned %d slots for %s", len(result.Slots), query.Get("date"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResult(result, h.location))
}
