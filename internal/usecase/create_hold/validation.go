package create_hold

import (
	"fmt"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

func (u *UseCase) validate(req Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: start_at is required", ErrInvalidInput)
	}
	if !u.tariffs.AllowedDuration(req.DurationMinutes) {
		return fmt.Errorf("%w: duration %d is not allowed", ErrInvalidInput, req.DurationMinutes)
	}
	if req.Sims < 1 || req.Sims > u.maxSims {
		return fmt.Errorf("%w: sims must be in 1..%d", ErrInvalidInput, u.maxSims)
	}
	if req.BonusSpend < 0 {
		return fmt.Errorf("%w: bonus_spend must not be negative", ErrInvalidInput)
	}

	iv := domain.NewInterval(req.StartAt, req.DurationMinutes)
	if err := u.schedule.ValidateInterval(iv); err != nil {
		return fmt.Errorf("%w: %v", ErrOutsideBusinessHours, err)
	}
	if !req.StartAt.After(u.timeProvider.Now()) {
		return fmt.Errorf("%w: start_at must be in the future", ErrInvalidInput)
	}

	return nil
}
