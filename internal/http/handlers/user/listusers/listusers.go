// Package listusers реализует HTTP-обработчик выдачи всех пользователей.
package listusers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-aggregator/internal/http/response"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/event-aggregator/internal/models"
)

// Service описывает интерфейс бизнес-логики выборки пользователей.
type Service interface {
	List(ctx context.Context) ([]models.User, error)
}

// Handler управляет HTTP-запросами списка пользователей.
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.listusers"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err("Server error"))
		return
	}
	if users == nil {
		users = []models.User{}
	}

	log.Info("users listed", slog.Int("count", len(users)))
	render.JSON(w, r, users)
}
