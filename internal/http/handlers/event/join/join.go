// Package join реализует HTTP-обработчик присоединения к событию.
package join

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/event-aggregator/internal/models"
	eventsvc "github.com/magabrotheeeer/event-aggregator/internal/services/event"
)

// Service описывает интерфейс бизнес-логики присоединения к событию.
type Service interface {
	Join(ctx context.Context, id string) (*models.Event, error)
}

// Handler управляет HTTP-запросами на присоединение к событию.
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
	const op = "handlers.event.join"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	event, err := h.service.Join(r.Context(), id)
	if err != nil {
		if errors.Is(err, eventsvc.ErrEventNotFound) {
			log.Info("event not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, map[string]string{"message": "Event not found"})
			return
		}
		log.Error("failed to join event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"message": "Server error"})
		return
	}

	log.Info("participant joined", slog.String("id", id), slog.Int("participants", event.Participants))
	render.JSON(w, r, event)
}
