package waitlist

import "errors"

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("waitlist: invalid input")

	// ErrOutsideBusinessHours интервал выходит за рамки рабочего дня
	ErrOutsideBusinessHours = errors.New("waitlist: interval outside business hours")

	// ErrEntryNotFound подписка не найдена
	ErrEntryNotFound = errors.New("waitlist: entry not found")

	// ErrForbidden подписка принадлежит другому пользователю
	ErrForbidden = errors.New("waitlist: access denied")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("waitlist: internal error")
)
