package middleware

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type contextKey string

const (
	// HeaderAdminID заголовок с идентификатором администратора
	HeaderAdminID = "X-Admin-ID"

	adminIDKey contextKey = "adminID"
)

// AdminAuth проверяет наличие заголовка X-Admin-ID на админских маршрутах
// Полноценная аутентификация живет на API-шлюзе, сервис доверяет заголовку
func AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID := r.Header.Get(HeaderAdminID)
		if adminID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "требуется заголовок X-Admin-ID",
			})
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminIDFromContext возвращает идентификатор администратора из контекста
func AdminIDFromContext(ctx context.Context) string {
	adminID, _ := ctx.Value(adminIDKey).(string)
	return adminID
}
