package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

const userIDKey contextKey = "userID"

// userIDHeader заголовок с идентификатором пользователя, проставляется API gateway
const userIDHeader = "X-User-ID"

// Auth извлекает идентификатор пользователя из заголовка и кладёт его в контекст
// Запросы без заголовка пропускаются дальше, обязательность решает handler
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(userIDHeader)
		if header != "" {
			if userID, err := strconv.ParseInt(header, 10, 64); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает идентификатор пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
