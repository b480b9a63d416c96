// Package remove реализует HTTP-обработчик удаления события по названию.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-aggregator/internal/http/response"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/event-aggregator/internal/models"
	eventsvc "github.com/magabrotheeeer/event-aggregator/internal/services/event"
)

// Service описывает интерфейс бизнес-логики удаления события.
type Service interface {
	DeleteByTitle(ctx context.Context, title string) ([]models.Event, error)
}

// Handler управляет HTTP-запросами на удаление события.
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
	const op = "handlers.event.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	title := chi.URLParam(r, "eventTitle")

	remaining, err := h.service.DeleteByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, eventsvc.ErrEventNotFound) {
			log.Info("event not found", slog.String("title", title))
			render.JSON(w, r, response.Err("Event not found"))
			return
		}
		log.Error("failed to delete event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err("Server error"))
		return
	}
	if remaining == nil {
		remaining = []models.Event{}
	}

	log.Info("event deleted", slog.String("title", title), slog.Int("remaining", len(remaining)))
	render.JSON(w, r, map[string]any{
		"result":    true,
		"eventName": remaining,
	})
}
