// Package remove реализует HTTP-обработчик удаления учётной записи.
// Удаление терминально: запись пользователя стирается вместе с его
// карточками расходов, сессионные cookie очищаются.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ansokolv/expense-cards/internal/http/cookies"
	"github.com/ansokolv/expense-cards/internal/http/handlers/user/login"
	"github.com/ansokolv/expense-cards/internal/http/middlewarectx"
	"github.com/ansokolv/expense-cards/internal/http/response"
	"github.com/ansokolv/expense-cards/internal/lib/sl"
	"github.com/ansokolv/expense-cards/internal/models"
	"github.com/ansokolv/expense-cards/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики удаления учётной записи.
type Service interface {
	DeleteUser(ctx context.Context, userUID string) (*models.PublicUser, error)
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
// @Summary Удаление учётной записи
// @Description Безвозвратно удаляет учётную запись текущего пользователя.
// @Tags Users
// @Produce  json
// @Success 200 {object} response.Envelope "Учётная запись удалена"
// @Failure 401 {object} response.Envelope "Пользователь не авторизован"
// @Failure 404 {object} response.Envelope "Учётная запись уже отсутствует"
// @Failure 500 {object} response.Envelope "Внутренняя ошибка сервера"
// @Router /users/delete [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.remove"

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

	deleted, err := h.service.DeleteUser(r.Context(), user.UID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Error("user already deleted", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "user not found"))
			return
		}
		log.Error("failed to delete user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "failed to delete user"))
		return
	}

	cookies.Clear(w, middlewarectx.AccessTokenCookie, h.secureCookies)
	cookies.Clear(w, login.RefreshTokenCookie, h.secureCookies)

	log.Info("user deleted", slog.String("uid", deleted.UID))
	render.JSON(w, r, response.OK(deleted, "user deleted successfully"))
}
