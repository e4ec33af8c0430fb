package reschedule_booking

import "errors"

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("reschedule_booking: invalid input")

	// ErrBookingNotFound заявка не найдена
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrNotOwner заявка принадлежит другому пользователю
	ErrNotOwner = errors.New("reschedule_booking: booking belongs to another user")

	// ErrNotEditable заявку нельзя перенести (не pending или уже началась)
	ErrNotEditable = errors.New("reschedule_booking: booking is not editable")

	// ErrOutsideBusinessHours интервал выходит за рамки рабочего дня
	ErrOutsideBusinessHours = errors.New("reschedule_booking: interval outside business hours")

	// ErrSlotUnavailable на новом интервале не хватает свободных симуляторов
	ErrSlotUnavailable = errors.New("reschedule_booking: slot unavailable")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("reschedule_booking: internal error")
)
