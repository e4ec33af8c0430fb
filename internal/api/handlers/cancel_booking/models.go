package cancel_booking

// CancelBookingRequest HTTP request model. Причина опциональна
// и попадает в уведомление клиенту при отмене сотрудником.
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}
