// Package create реализует HTTP-обработчик создания карточек расходов.
//
// Handler принимает JSON с данными карточки, валидирует их, берёт
// владельца из контекста авторизованной сессии и возвращает ID
// созданной записи.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ansokolv/expense-cards/internal/http/middlewarectx"
	"github.com/ansokolv/expense-cards/internal/http/response"
	"github.com/ansokolv/expense-cards/internal/lib/sl"
	"github.com/ansokolv/expense-cards/internal/models"
)

// Service описывает интерфейс бизнес-логики создания карточки.
type Service interface {
	Create(ctx context.Context, ownerUID string, req models.DummyExpenseCard) (string, error)
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
// @Summary Создать карточку расхода
// @Description Создает карточку расхода для текущего пользователя. Возвращает ID созданной записи.
// @Tags Expenses
// @Accept  json
// @Produce  json
// @Param request body models.DummyExpenseCard true "Данные новой карточки"
// @Success 201 {object} response.Envelope "Карточка создана"
// @Failure 400 {object} response.Envelope "Некорректный JSON"
// @Failure 401 {object} response.Envelope "Пользователь не авторизован"
// @Failure 422 {object} response.Envelope "Ошибка валидации"
// @Failure 500 {object} response.Envelope "Ошибка сервера при создании карточки"
// @Router /expenses/create-expense-card [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyExpenseCard
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidation, "invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeMissingToken, "unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), user.UID, req)
	if err != nil {
		log.Error("failed to create expense card", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not create expense card"))
		return
	}

	log.Info("expense card created", slog.String("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OK(map[string]any{
		"id": id,
	}, "expense card created and saved successfully"))
}
