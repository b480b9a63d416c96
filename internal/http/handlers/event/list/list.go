// Package list реализует HTTP-обработчик выдачи всех событий.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-aggregator/internal/http/response"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/event-aggregator/internal/models"
	eventsvc "github.com/magabrotheeeer/event-aggregator/internal/services/event"
)

// Service описывает интерфейс бизнес-логики выборки событий.
type Service interface {
	ListAll(ctx context.Context) ([]models.Event, error)
}

// Handler управляет HTTP-запросами списка событий.
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

// ServeHTTP godoc
// @Summary Получить все события
// @Tags Events
// @Produce  json
// @Success 200 {object} map[string]any "result:true, message и events"
// @Failure 200 {object} response.Response "No events found"
// @Router /events [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	events, err := h.service.ListAll(r.Context())
	if err != nil {
		if errors.Is(err, eventsvc.ErrNoEvents) {
			log.Info("no events found")
			render.JSON(w, r, response.ErrMessage("No events found"))
			return
		}
		log.Error("failed to list events", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.ErrMessage("Server error"))
		return
	}

	log.Info("events listed", slog.Int("count", len(events)))
	render.JSON(w, r, map[string]any{
		"result":  true,
		"message": "events found",
		"events":  events,
	})
}
