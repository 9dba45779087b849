// Package filter реализует HTTP-обработчик фильтрованной выборки карточек.
//
// Параметры запроса переводятся в типизированный фильтр, владелец
// подставляется из авторизованной сессии. Непарсящаяся граница
// диапазона — 400, а не молчаливое игнорирование.
package filter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ansokolv/expense-cards/internal/http/middlewarectx"
	"github.com/ansokolv/expense-cards/internal/http/response"
	filterlib "github.com/ansokolv/expense-cards/internal/lib/filter"
	"github.com/ansokolv/expense-cards/internal/lib/sl"
	"github.com/ansokolv/expense-cards/internal/models"
)

// Service описывает интерфейс бизнес-логики выборки карточек.
type Service interface {
	List(ctx context.Context, f models.ExpenseFilter) ([]*models.ExpenseCard, error)
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
// @Summary Отфильтровать карточки расходов
// @Description Возвращает карточки текущего пользователя по фильтрам категории, суммы и даты с сортировкой.
// @Tags Expenses
// @Produce  json
// @Param sortBasis query string false "Поле сортировки (title, category, amount, date, createdAt, updatedAt)"
// @Param sortOrder query string false "Порядок сортировки: asc или desc"
// @Param category query string false "Точное совпадение категории"
// @Param minAmount query number false "Нижняя граница суммы"
// @Param maxAmount query number false "Верхняя граница суммы"
// @Param minDate query string false "Нижняя граница даты (2006-01-02)"
// @Param maxDate query string false "Верхняя граница даты (2006-01-02)"
// @Success 200 {object} response.Envelope "Карточки найдены"
// @Failure 400 {object} response.Envelope "Непарсящаяся граница диапазона"
// @Failure 401 {object} response.Envelope "Пользователь не авторизован"
// @Failure 500 {object} response.Envelope "Внутренняя ошибка сервера"
// @Router /expenses/filter-cards [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.filter"

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

	f, err := filterlib.Parse(user.UID, r.URL.Query())
	if err != nil {
		if errors.Is(err, filterlib.ErrInvalidRange) {
			log.Error("invalid range bound in query", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRange, "range bounds must be numeric amounts or dates in format 2006-01-02"))
			return
		}
		log.Error("failed to parse filter", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "internal service error"))
		return
	}

	cards, err := h.service.List(r.Context(), *f)
	if err != nil {
		log.Error("failed to list expense cards", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not list expense cards"))
		return
	}

	log.Info("expense cards fetched", slog.Int("count", len(cards)))
	render.JSON(w, r, response.OK(map[string]any{
		"count": len(cards),
		"cards": cards,
	}, "expense cards fetched successfully"))
}
