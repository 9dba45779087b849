// Package logout реализует HTTP-обработчик выхода из сессии.
//
// Единственное действие — очистка refresh-токена на учётной записи.
// Access-токен остаётся криптографически валидным до истечения, но
// сессионная проверка перестаёт его принимать: это и есть серверный
// отзыв сессии при stateless-токенах.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ansokolv/expense-cards/internal/http/cookies"
	"github.com/ansokolv/expense-cards/internal/http/handlers/user/login"
	"github.com/ansokolv/expense-cards/internal/http/middlewarectx"
	"github.com/ansokolv/expense-cards/internal/http/response"
	"github.com/ansokolv/expense-cards/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, userUID string) error
}

type Handler struct {
	log           *slog.Logger
	service       Service
	secureCookies bool
}

func New(log *slog.Logger, service Service, secureCookies bool) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		secureCookies: secureCookies,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Завершает сессию: очищает refresh-токен на учётной записи и стирает сессионные cookie.
// @Tags Users
// @Produce  json
// @Success 200 {object} response.Envelope "Сессия завершена"
// @Failure 401 {object} response.Envelope "Пользователь не авторизован"
// @Failure 500 {object} response.Envelope "Внутренняя ошибка сервера"
// @Router /users/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeMissingToken, "unauthorized"))
		return
	}

	if err := h.service.Logout(r.Context(), user.UID); err != nil {
		log.Error("failed to logout user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "failed to logout user"))
		return
	}

	cookies.Clear(w, middlewarectx.AccessTokenCookie, h.secureCookies)
	cookies.Clear(w, login.RefreshTokenCookie, h.secureCookies)

	log.Info("user logged out", slog.String("uid", user.UID))
	render.JSON(w, r, response.OK(nil, "user logged out successfully"))
}
