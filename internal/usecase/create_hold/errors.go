package create_hold

import "errors"

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("create_hold: invalid input")

	// ErrOutsideBusinessHours интервал выходит за рамки рабочего дня
	ErrOutsideBusinessHours = errors.New("create_hold: interval outside business hours")

	// ErrCapacityExceeded не хватает свободных симуляторов на интервал
	ErrCapacityExceeded = errors.New("create_hold: capacity exceeded")

	// ErrTooManyBookings превышен лимит активных заявок пользователя
	ErrTooManyBookings = errors.New("create_hold: too many active bookings")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("create_hold: internal error")
)
