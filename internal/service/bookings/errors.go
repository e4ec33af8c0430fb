package bookings

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound бронь не найдена
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrForbidden бронь принадлежит другому пользователю
	ErrForbidden = errors.New("bookings: access denied")

	// ErrNotCancellable бронь нельзя отменить (финальный статус)
	ErrNotCancellable = errors.New("bookings: booking cannot be cancelled")

	// ErrTooLate слот уже начался, владельцу отмена закрыта.
	// Оборачивает ErrNotCancellable: общий маппинг на 409 сохраняется,
	// но errors.Is позволяет отличить причину.
	ErrTooLate = fmt.Errorf("%w: slot already started", ErrNotCancellable)

	// ErrNotFinalizable визит нельзя закрыть
	ErrNotFinalizable = errors.New("bookings: booking cannot be finalized")

	// ErrNotConfirmed закрыть можно только подтвержденную бронь
	ErrNotConfirmed = fmt.Errorf("%w: booking is not confirmed", ErrNotFinalizable)

	// ErrTooEarly слот еще не закончился
	ErrTooEarly = fmt.Errorf("%w: slot has not ended yet", ErrNotFinalizable)

	// ErrNotBlock бронь не является техперерывом
	ErrNotBlock = errors.New("bookings: booking is not a block")

	// ErrCapacityExceeded не хватает свободных симуляторов под техперерыв
	ErrCapacityExceeded = errors.New("bookings: capacity exceeded")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("bookings: invalid input")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("bookings: internal error")
)
