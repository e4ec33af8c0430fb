package confirm_booking

import "github.com/m04kA/SRC-BookingService/internal/domain"

// Outcome исход попытки подтверждения.
// Подтверждение не «падает» на обычных бизнес-исходах: каждый из них —
// полноценный ответ, по которому presentation-слой строит сообщение.
type Outcome string

const (
	// OutcomeConfirmed заявка подтверждена
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeExpired заявка протухла по expires_at и отменена
	OutcomeExpired Outcome = "expired"
	// OutcomeNoCapacity симуляторов не хватило, заявка отменена
	OutcomeNoCapacity Outcome = "no_capacity"
	// OutcomeUnchanged заявка уже не pending; ничего не меняли
	OutcomeUnchanged Outcome = "unchanged"
)

// Result итог подтверждения: исход и состояние брони после коммита
type Result struct {
	Outcome Outcome
	Booking *domain.Booking
}
