package availability

import "errors"

var (
	// ErrInvalidInterval возвращается при некорректном интервале запроса
	ErrInvalidInterval = errors.New("availability: invalid interval")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
