// Package rename реализует HTTP-обработчик смены имени пользователя.
package rename

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-aggregator/internal/lib/sl"
	usersvc "github.com/magabrotheeeer/event-aggregator/internal/services/user"
)

// Request — новое имя пользователя.
type Request struct {
	Username string `json:"username"`
}

// Service описывает интерфейс бизнес-логики смены имени.
type Service interface {
	Rename(ctx context.Context, token, username string) error
}

// Handler управляет HTTP-запросами на смену имени.
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
	const op = "handlers.user.rename"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := chi.URLParam(r, "token")

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"message": "invalid request body"})
		return
	}

	// Пустое имя не является изменением, до хранилища не доходит.
	if strings.TrimSpace(req.Username) == "" {
		log.Info("empty username in rename request")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, map[string]string{"message": "User not found or username unchanged."})
		return
	}

	err := h.service.Rename(r.Context(), token, req.Username)
	if err != nil {
		if errors.Is(err, usersvc.ErrNothingToUpdate) {
			log.Info("nothing to update", slog.String("username", req.Username))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, map[string]string{"message": "User not found or username unchanged."})
			return
		}
		log.Error("failed to rename user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"message": "Server error"})
		return
	}

	log.Info("username updated", slog.String("username", req.Username))
	render.JSON(w, r, map[string]string{"message": "Username updated successfully."})
}
