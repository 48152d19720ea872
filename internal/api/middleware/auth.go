package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bitebooking/booking-engine/internal/api/handlers"
	"github.com/bitebooking/booking-engine/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

// Auth извлекает пользователя из заголовков X-User-ID и X-User-Role.
// Заголовки проставляет API gateway после проверки токена, сам сервис
// токены не разбирает. Без валидного X-User-ID запрос отклоняется.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUserID := r.Header.Get(headerUserID)
		if rawUserID == "" {
			handlers.RespondUnauthorized(w, "falta el encabezado X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "encabezado X-User-ID inválido")
			return
		}

		role := domain.Role(r.Header.Get(headerUserRole))
		if role == "" {
			role = domain.RoleUser
		}
		if !role.IsValid() {
			handlers.RespondUnauthorized(w, "encabezado X-User-Role inválido")
			return
		}

		principal := domain.Principal{
			UserID: userID,
			Role:   role,
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPrincipal возвращает пользователя из контекста запроса
func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}
