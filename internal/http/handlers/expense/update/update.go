// Package update реализует HTTP-обработчик частичного обновления карточки.
//
// Меняются только переданные поля: каждое поле запроса — указатель,
// поэтому нулевая сумма отличима от отсутствующей. Владелец карточки
// не меняется никогда.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ansokolv/expense-cards/internal/http/middlewarectx"
	"github.com/ansokolv/expense-cards/internal/http/response"
	"github.com/ansokolv/expense-cards/internal/lib/sl"
	"github.com/ansokolv/expense-cards/internal/models"
	"github.com/ansokolv/expense-cards/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики обновления карточки.
type Service interface {
	Update(ctx context.Context, id, ownerUID string, req models.UpdateExpenseCard) (*models.ExpenseCard, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить карточку расхода
// @Description Частично обновляет карточку текущего пользователя: меняются только переданные поля.
// @Tags Expenses
// @Accept  json
// @Produce  json
// @Param id path string true "ID карточки"
// @Param request body models.UpdateExpenseCard true "Изменяемые поля"
// @Success 200 {object} response.Envelope "Карточка обновлена"
// @Failure 400 {object} response.Envelope "Некорректный ID или JSON"
// @Failure 401 {object} response.Envelope "Пользователь не авторизован"
// @Failure 404 {object} response.Envelope "Карточка не существует или принадлежит другому пользователю"
// @Failure 422 {object} response.Envelope "Ошибка валидации"
// @Failure 500 {object} response.Envelope "Внутренняя ошибка сервера"
// @Router /expenses/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.update"

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

	var req models.UpdateExpenseCard
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidation, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeMissingToken, "unauthorized"))
		return
	}

	card, err := h.service.Update(r.Context(), id, user.UID, req)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			log.Error("expense card not found for owner", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "either expense card does not exist or you are not authorized to update this card"))
			return
		}
		log.Error("failed to update expense card", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not update expense card"))
		return
	}

	log.Info("expense card updated", slog.String("id", id))
	render.JSON(w, r, response.OK(card, "expense card updated successfully"))
}
