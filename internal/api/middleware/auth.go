package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/paintly/booking-service/internal/api/handlers"
	"github.com/paintly/booking-service/internal/domain"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	msgUnauthorized = "требуется аутентификация"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth требует валидные заголовки идентификации и кладет identity в контекст
// Запрос без заголовков или с некорректными значениями отклоняется с 401
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := parseIdentity(r)
			if !ok {
				logger.Warn("%s %s - missing or invalid identity headers", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// OptionalAuth кладет identity в контекст, если заголовки присутствуют и
// валидны; анонимные запросы пропускаются дальше без identity
func OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity, ok := parseIdentity(r); ok {
				r = r.WithContext(WithIdentity(r.Context(), identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseIdentity(r *http.Request) (Identity, bool) {
	userID := r.Header.Get(headerUserID)
	if _, err := uuid.Parse(userID); err != nil {
		return Identity{}, false
	}

	role := domain.UserRole(r.Header.Get(headerUserRole))
	if !role.Valid() {
		return Identity{}, false
	}

	return Identity{UserID: userID, Role: role}, true
}
