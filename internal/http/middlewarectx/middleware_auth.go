// Package middlewarectx содержит HTTP middleware сессионной авторизации.
//
// SessionMiddleware извлекает access-токен из запроса, проверяет его
// и разрешает в учётную запись с активной сессией. В случае успеха
// в контекст запроса кладётся пользователь без чувствительных полей,
// иначе запрос завершается ошибкой. Состояние при проверке не меняется.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ansokolv/expense-cards/internal/http/response"
	"github.com/ansokolv/expense-cards/internal/lib/sl"
	"github.com/ansokolv/expense-cards/internal/models"
	authservice "github.com/ansokolv/expense-cards/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ авторизованного пользователя в контексте.
const User Key = "user"

// AccessTokenCookie — имя cookie с access-токеном.
const AccessTokenCookie = "accessToken"

// Service описывает интерфейс сервиса разрешения access-токена
// в авторизованного пользователя.
type Service interface {
	Authorize(ctx context.Context, token string) (*models.PublicUser, error)
}

// extractToken выбирает ровно один источник токена: заголовок
// Authorization имеет приоритет, если передан явно, иначе берётся
// cookie. Источники никогда не смешиваются.
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// SessionMiddleware возвращает HTTP middleware, который пускает дальше
// только запросы с валидным access-токеном и живой сессией.
//
// Отсутствующий токен — 401 MISSING_TOKEN, невалидный — 401
// INVALID_TOKEN. Если токен валиден, но refresh-токен на учётной
// записи очищен (выход или удаление), возвращается 404
// SESSION_REVOKED: различать эти случаи наружу нельзя.
func SessionMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := extractToken(r)
			if token == "" {
				log.Error("missing access token")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.CodeMissingToken, "unauthorized request, please login to continue"))
				return
			}

			user, err := authService.Authorize(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, authservice.ErrInvalidToken):
					log.Error("invalid or expired token", sl.Err(err))
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error(response.CodeInvalidToken, "invalid or expired token"))
				case errors.Is(err, authservice.ErrSessionRevoked):
					log.Error("session revoked", sl.Err(err))
					w.WriteHeader(http.StatusNotFound)
					render.JSON(w, r, response.Error(response.CodeSessionRevoked, "this user is deleted or already logged out"))
				default:
					log.Error("authorization failed", sl.Err(err))
					w.WriteHeader(http.StatusInternalServerError)
					render.JSON(w, r, response.Error(response.CodeInternal, "internal service error"))
				}
				return
			}

			ctx := context.WithValue(r.Context(), User, *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext достаёт авторизованного пользователя из контекста.
func UserFromContext(ctx context.Context) (models.PublicUser, bool) {
	user, ok := ctx.Value(User).(models.PublicUser)
	return user, ok
}
