package get_free_slots

import "errors"

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("get_free_slots: invalid input")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("get_free_slots: internal error")
)
