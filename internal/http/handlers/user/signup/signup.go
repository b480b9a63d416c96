// Package signup реализует HTTP-обработчик регистрации аккаунта.
//
// Handler принимает JSON-запрос с данными пользователя, проверяет наличие
// обязательных полей, вызывает бизнес-логику регистрации и возвращает
// сохранённую запись. Хэш пароля в ответ не попадает.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-aggregator/internal/http/response"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/checkbody"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/event-aggregator/internal/models"
	usersvc "github.com/magabrotheeeer/event-aggregator/internal/services/user"
)

// Request — входные данные регистрации. Photo — единственное
// необязательное поле.
type Request struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Birthdate string `json:"birthdate"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Photo     string `json:"photo"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, req usersvc.RegisterRequest) (*models.User, error)
}

// Handler управляет HTTP-запросами на регистрацию.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

var requiredFields = []string{"username", "password", "birthdate", "email", "telephone"}

// ServeHTTP godoc
// @Summary Зарегистрировать аккаунт
// @Description Создаёт новый аккаунт. Имя пользователя уникально без учёта регистра.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body signup.Request true "Данные нового пользователя"
// @Success 200 {object} map[string]any "result:true и savedUser"
// @Failure 200 {object} response.Response "Missing or empty fields / User already exists"
// @Router /users/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.signup"
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

	if !checkbody.Check(raw, requiredFields) {
		log.Info("missing or empty required fields")
		render.JSON(w, r, response.Err("Missing or empty fields"))
		return
	}

	saved, err := h.service.Register(r.Context(), usersvc.RegisterRequest{
		Username:  req.Username,
		Password:  req.Password,
		Birthdate: req.Birthdate,
		Email:     req.Email,
		Telephone: req.Telephone,
		Photo:     req.Photo,
	})
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrUserExists):
			log.Info("duplicate username", slog.String("username", req.Username))
			render.JSON(w, r, response.Err("User already exists"))
		case errors.Is(err, usersvc.ErrInvalidBirthdate):
			log.Info("invalid birthdate", slog.String("birthdate", req.Birthdate))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Err("Invalid birthdate"))
		default:
			log.Error("failed to register user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Err("Server error"))
		}
		return
	}

	log.Info("user registered", slog.String("username", saved.Username))
	render.JSON(w, r, map[string]any{
		"result":    true,
		"savedUser": saved,
	})
}
