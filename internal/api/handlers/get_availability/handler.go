package get_availability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
	"github.com/m04kA/SRC-BookingService/internal/domain"
	availabilityService "github.com/m04kA/SRC-BookingService/internal/service/availability"
)

const (
	msgInvalidDateTime  = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidDuration  = "некорректная длительность"
	msgInvalidExcludeID = "некорректный ID исключаемой брони"
	msgInvalidInterval  = "некорректный интервал"
)

// AvailabilityResponse HTTP response model доступности
type AvailabilityResponse struct {
	FreeSims int `json:"freeSims"`
	MaxSims  int `json:"maxSims"`
}

type Handler struct {
	service  AvailabilityService
	location *time.Location
	logger   Logger
}

func NewHandler(service AvailabilityService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&startTime=HH:MM&durationMinutes=60[&excludeId=N]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	startAt, err := time.ParseInLocation(
		domain.DateFormat+" "+domain.TimeFormat,
		fmt.Sprintf("%s %s", query.Get("date"), query.Get("startTime")),
		h.location,
	)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	durationMinutes, err := strconv.Atoi(query.Get("durationMinutes"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	var excludeID *int64
	if raw := query.Get("excludeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid exclude ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		excludeID = &id
	}

	free, err := h.service.FreeCapacity(r.Context(), domain.NewInterval(startAt, durationMinutes), excludeID)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInvalidInterval):
			h.logger.Warn("GET /availability - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /availability - Failed to compute capacity: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Free sims: %d (start=%s, duration=%d)",
		free, startAt.Format(domain.TimeFormat), durationMinutes)
	handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
		FreeSims: free,
		MaxSims:  h.service.MaxSims(),
	})
}
