// Package deleteuser реализует HTTP-обработчик удаления аккаунта.
//
// Токен сессии берётся из контекста запроса, куда его помещает
// middleware проверки заголовка Authorization. Удалить можно только
// собственный аккаунт.
package deleteuser

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-aggregator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/event-aggregator/internal/http/response"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/sl"
	usersvc "github.com/magabrotheeeer/event-aggregator/internal/services/user"
)

// Service описывает интерфейс бизнес-логики удаления аккаунта.
type Service interface {
	Delete(ctx context.Context, token, username string) error
}

// Handler управляет HTTP-запросами на удаление аккаунта.
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
	const op = "handlers.user.deleteuser"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	token, _ := r.Context().Value(middlewarectx.Token).(string)

	err := h.service.Delete(r.Context(), token, username)
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrInvalidToken):
			log.Info("invalid token")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Err("Invalid token"))
		case errors.Is(err, usersvc.ErrNotOwner):
			log.Info("foreign account deletion attempt", slog.String("username", username))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Err("You can only delete your own account"))
		default:
			log.Error("failed to delete user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Err("Server error, deletion failed"))
		}
		return
	}

	log.Info("account deleted", slog.String("username", username))
	render.JSON(w, r, map[string]any{
		"result":  true,
		"message": "Account deleted successfully",
	})
}
