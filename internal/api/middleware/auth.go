// Package middleware промежуточные обработчики HTTP: аутентификация
// по заголовку X-User-ID и сбор метрик запросов.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SRC-BookingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	staffKey  contextKey = "is_staff"
)

// NewAuth аутентификация по заголовку X-User-ID. Идентификацию выполняет
// вышестоящий шлюз, сервис доверяет заголовку. Пользователи из staffIDs
// помечаются как сотрудники.
func NewAuth(staffIDs []int64) func(http.Handler) http.Handler {
	staff := make(map[int64]struct{}, len(staffIDs))
	for _, id := range staffIDs {
		staff[id] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("X-User-ID")
			if raw == "" {
				handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				handlers.RespondUnauthorized(w, "некорректный X-User-ID")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			if _, ok := staff[userID]; ok {
				ctx = context.WithValue(ctx, staffKey, true)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff пропускает только сотрудников
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsStaff(r.Context()) {
			handlers.RespondForbidden(w, "требуются права сотрудника")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsStaff является ли пользователь сотрудником
func IsStaff(ctx context.Context) bool {
	isStaff, ok := ctx.Value(staffKey).(bool)
	return ok && isStaff
}
