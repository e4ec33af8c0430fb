package loyalty

import "errors"

var (
	// ErrInternal внутренняя ошибка сервиса лояльности
	ErrInternal = errors.New("loyalty: internal error")
)
