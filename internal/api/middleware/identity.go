package middleware

import (
	"context"

	"github.com/paintly/booking-service/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity аутентифицированный пользователь запроса
// Заполняется из заголовков X-User-ID и X-User-Role, которые проставляет
// API gateway после проверки токена
type Identity struct {
	UserID string
	Role   domain.UserRole
}

// WithIdentity кладет identity в контекст запроса
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext извлекает identity из контекста
// Второе значение false, если запрос анонимный
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
