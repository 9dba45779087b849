// Package remove реализует HTTP-обработчик удаления карточки расхода.
// Повторное удаление того же ID идемпотентно отвечает 404, а не
// внутренней ошибкой.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/ansokolv/expense-cards/internal/http/middlewarectx"
	"github.com/ansokolv/expense-cards/internal/http/response"
	"github.com/ansokolv/expense-cards/internal/lib/sl"
	"github.com/ansokolv/expense-cards/internal/models"
	"github.com/ansokolv/expense-cards/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики удаления карточки.
type Service interface {
	Remove(ctx context.Context, id, ownerUID string) (*models.ExpenseCard, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить карточку расхода
// @Description Удаляет карточку по ID в пределах текущего пользователя и возвращает её последнее состояние.
// @Tags Expenses
// @Produce  json
// @Param id path string true "ID карточки"
// @Success 200 {object} response.Envelope "Карточка удалена"
// @Failure 400 {object} response.Envelope "Некорректный ID"
// @Failure 401 {object} response.Envelope "Пользователь не авторизован"
// @Failure 404 {object} response.Envelope "Карточка не существует или принадлежит другому пользователю"
// @Failure 500 {object} response.Envelope "Внутренняя ошибка сервера"
// @Router /expenses/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Error("invalid expense id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidation, "invalid expense id"))
		return
	}

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeMissingToken, "unauthorized"))
		return
	}

	card, err := h.service.Remove(r.Context(), id, user.UID)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			log.Error("expense card not found for owner", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "either expense card does not exist or you are not authorized to delete that card"))
			return
		}
		log.Error("failed to delete expense card", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not delete expense card"))
		return
	}

	log.Info("expense card deleted", slog.String("id", id))
	render.JSON(w, r, response.OK(card, "expense card deleted successfully"))
}
