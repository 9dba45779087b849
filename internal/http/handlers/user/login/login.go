// Package login реализует HTTP-обработчик входа пользователей.
//
// Идентификатором служит username или email — хотя бы один обязателен.
// При успехе выпускается пара JWT (access + refresh), оба токена
// выставляются HttpOnly cookie, refresh-токен сохраняется на учётной
// записи как отметка активной сессии.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ansokolv/expense-cards/internal/http/cookies"
	"github.com/ansokolv/expense-cards/internal/http/middlewarectx"
	"github.com/ansokolv/expense-cards/internal/http/response"
	"github.com/ansokolv/expense-cards/internal/lib/sl"
	authservice "github.com/ansokolv/expense-cards/internal/services/auth"
)

// RefreshTokenCookie — имя cookie с refresh-токеном.
const RefreshTokenCookie = "refreshToken"

// Request — структура входных данных для авторизации.
//
// Username и Email опциональны по отдельности, но хотя бы один
// должен быть передан — это проверяет сервис.
type Request struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, email, rawPassword string) (*authservice.LoginResult, error)
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log           *slog.Logger
	service       Service
	validate      *validator.Validate
	secureCookies bool
}

// New создает новый экземпляр Handler. secureCookies управляет
// Secure-флагом сессионных cookie.
func New(log *slog.Logger, service Service, secureCookies bool) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		validate:      validator.New(),
		secureCookies: secureCookies,
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Аутентифицирует по username или email и паролю. Выставляет две HttpOnly cookie и возвращает пару токенов.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Envelope "Успешный вход"
// @Failure 400 {object} response.Envelope "Некорректный JSON или нет идентификатора"
// @Failure 401 {object} response.Envelope "Неверные учетные данные"
// @Failure 422 {object} response.Envelope "Ошибка валидации"
// @Failure 500 {object} response.Envelope "Внутренняя ошибка сервера"
// @Router /users/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
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

	result, err := h.service.Login(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrMissingIdentifier):
			log.Error("neither username nor email supplied")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeMissingIdentifier, "username or email required"))
		case errors.Is(err, authservice.ErrInvalidCredentials):
			log.Error("invalid credentials", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(response.CodeInvalidCredentials, "invalid credentials"))
		default:
			log.Error("login failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.CodeInternal, "internal service error"))
		}
		return
	}

	cookies.Set(w, middlewarectx.AccessTokenCookie, result.AccessToken, h.secureCookies)
	cookies.Set(w, RefreshTokenCookie, result.RefreshToken, h.secureCookies)

	log.Info("login success", slog.String("uid", result.User.UID))
	render.JSON(w, r, response.OK(map[string]any{
		"user":         result.User,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	}, "user logged in successfully"))
}
