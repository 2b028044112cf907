package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	requestIDKey contextKey = "requestID"

	// HeaderUserID заголовок с ID пользователя, выставляется API gateway
	HeaderUserID = "X-User-ID"
)

const msgUnauthorized = "требуется заголовок X-User-ID с положительным ID пользователя"

// Auth проверяет заголовок X-User-ID и кладет ID пользователя в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
