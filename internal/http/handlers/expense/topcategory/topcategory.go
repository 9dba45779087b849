// Package topcategory реализует HTTP-обработчик аналитического запроса
// "самая дорогая категория": карточки владельца группируются по
// категориям, суммы складываются, возвращается максимум. Отсутствие
// карточек — успешный пустой ответ, не ошибка.
package topcategory

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ansokolv/expense-cards/internal/http/middlewarectx"
	"github.com/ansokolv/expense-cards/internal/http/response"
	"github.com/ansokolv/expense-cards/internal/lib/sl"
	"github.com/ansokolv/expense-cards/internal/models"
)

// Service описывает интерфейс бизнес-логики агрегации расходов.
type Service interface {
	TopCategory(ctx context.Context, ownerUID string) (*models.CategorySum, error)
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
// @Summary Самая дорогая категория
// @Description Возвращает категорию с максимальной суммой расходов текущего пользователя.
// @Tags Expenses
// @Produce  json
// @Success 200 {object} response.Envelope "Результат агрегации (пустой, если карточек нет)"
// @Failure 401 {object} response.Envelope "Пользователь не авторизован"
// @Failure 500 {object} response.Envelope "Внутренняя ошибка сервера"
// @Router /expenses/most-expensive-category [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.topcategory"

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

	top, err := h.service.TopCategory(r.Context(), user.UID)
	if err != nil {
		log.Error("failed to aggregate categories", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not aggregate categories"))
		return
	}

	if top == nil {
		log.Info("no expense cards for aggregation")
		render.JSON(w, r, response.OK(nil, "most expensive category fetched"))
		return
	}

	log.Info("most expensive category fetched", slog.String("category", top.Category))
	render.JSON(w, r, response.OK(top, "most expensive category fetched"))
}
