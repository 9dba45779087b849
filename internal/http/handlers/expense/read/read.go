// Package read реализует HTTP-обработчик чтения одной карточки расхода.
// Карточка ищется только в пределах владельца: чужая и отсутствующая
// карточки дают одинаковый ответ 404.
package read

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

// Service описывает интерфейс бизнес-логики чтения карточки.
type Service interface {
	Read(ctx context.Context, id, ownerUID string) (*models.ExpenseCard, error)
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
// @Summary Получить карточку расхода
// @Description Возвращает карточку по ID в пределах текущего пользователя.
// @Tags Expenses
// @Produce  json
// @Param id path string true "ID карточки"
// @Success 200 {object} response.Envelope "Карточка найдена"
// @Failure 400 {object} response.Envelope "Некорректный ID"
// @Failure 401 {object} response.Envelope "Пользователь не авторизован"
// @Failure 404 {object} response.Envelope "Карточка не существует или принадлежит другому пользователю"
// @Failure 500 {object} response.Envelope "Внутренняя ошибка сервера"
// @Router /expenses/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.read"

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

	card, err := h.service.Read(r.Context(), id, user.UID)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			log.Error("expense card not found for owner", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "either expense card does not exist or you are not authorized to view that card"))
			return
		}
		log.Error("failed to read expense card", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not read expense card"))
		return
	}

	log.Info("expense card fetched", slog.String("id", id))
	render.JSON(w, r, response.OK(card, "expense card fetched successfully"))
}
