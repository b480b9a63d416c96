// Package signin реализует HTTP-обработчик входа по email и паролю.
package signin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/event-aggregator/internal/http/response"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/checkbody"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/sl"
	usersvc "github.com/magabrotheeeer/event-aggregator/internal/services/user"
)

// Request — учетные данные для входа.
type Request struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (token, username string, err error)
}

// Handler управляет HTTP-запросами на вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

var requiredFields = []string{"email", "password"}

// ServeHTTP godoc
// @Summary Войти в аккаунт
// @Description Проверяет email и пароль, возвращает токен сессии.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body signin.Request true "Учетные данные"
// @Success 200 {object} map[string]any "result:true, token и username"
// @Failure 200 {object} response.Response "Invalid email or password"
// @Router /users/signin [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.signin"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err("invalid request body"))
		return
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err("invalid request body"))
		return
	}
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err("invalid request body"))
		return
	}

	// Сначала проверяем наличие полей, затем формат email.
	if !checkbody.Check(raw, requiredFields) {
		log.Info("missing or empty required fields")
		render.JSON(w, r, response.Err("Missing or empty fields"))
		return
	}

	if err := h.validate.Var(req.Email, "required,email"); err != nil {
		log.Info("invalid email format", slog.String("email", req.Email))
		render.JSON(w, r, response.Err("Invalid email format"))
		return
	}

	token, username, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usersvc.ErrInvalidCredentials) {
			log.Info("invalid credentials")
			render.JSON(w, r, response.Err("Invalid email or password"))
			return
		}
		log.Error("failed to sign in", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err("Server error"))
		return
	}

	log.Info("user signed in", slog.String("username", username))
	render.JSON(w, r, map[string]any{
		"result":   true,
		"token":    token,
		"username": username,
	})
}
