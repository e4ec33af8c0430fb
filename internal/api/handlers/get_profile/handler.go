package get_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
	"github.com/m04kA/SRC-BookingService/internal/api/middleware"
	clientRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/client"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
)

// ProfileResponse HTTP response model профиля лояльности
type ProfileResponse struct {
	Name          string  `json:"name"`
	Phone         *string `json:"phone,omitempty"`
	TotalBookings int     `json:"totalBookings"`
	TotalSpent    int     `json:"totalSpent"`
	BonusBalance  int     `json:"bonusBalance"`
}

type Handler struct {
	service LoyaltyService
	logger  Logger
}

func NewHandler(service LoyaltyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /profile - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	client, err := h.service.Profile(r.Context(), userID, nil)
	if err != nil {
		// клиента еще нет — пустой профиль, а не 404:
		// профиль появляется после первого завершенного визита
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			h.logger.Info("GET /profile - No profile yet: user_id=%d", userID)
			handlers.RespondJSON(w, http.StatusOK, &ProfileResponse{})
			return
		}

		h.logger.Error("GET /profile - Failed to get profile: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /profile - Profile retrieved: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, &ProfileResponse{
		Name:          client.Name,
		Phone:         client.Phone,
		TotalBookings: client.TotalBookings,
		TotalSpent:    client.TotalSpent,
		BonusBalance:  client.BonusBalance,
	})
}
