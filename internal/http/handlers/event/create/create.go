// Package create реализует HTTP-обработчик публикации события.
//
// Один и тот же Handler обслуживает оба маршрута создания: с
// геокодированием адреса и с готовыми координатами клиента. Режим
// задаётся при конструировании, поле location разбирается по-разному.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-aggregator/internal/geocoding"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/checkbody"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/event-aggregator/internal/models"
	eventsvc "github.com/magabrotheeeer/event-aggregator/internal/services/event"
)

// Request — данные нового события. Location хранится сырым байтовым
// срезом: в режиме геокодирования это строка-адрес, в клиентском
// режиме объект с координатами.
type Request struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Location     json.RawMessage `json:"location"`
	Date         string          `json:"date"`
	Type         string          `json:"type"`
	Participants int             `json:"participants"`
	Price        float64         `json:"price"`
	Image        string          `json:"image"`
	Creator      string          `json:"creator"`
}

// clientLocation — форма location при клиентских координатах.
type clientLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Service описывает интерфейс бизнес-логики создания события.
type Service interface {
	Create(ctx context.Context, draft eventsvc.Draft, source eventsvc.CoordinateSource) (*models.Event, error)
}

// Handler управляет HTTP-запросами на создание события.
type Handler struct {
	log     *slog.Logger
	service Service
	source  eventsvc.CoordinateSource
}

// New создает новый Handler для заданного источника координат.
func New(log *slog.Logger, service Service, source eventsvc.CoordinateSource) *Handler {
	return &Handler{
		log:     log,
		service: service,
		source:  source,
	}
}

var requiredFields = []string{"title", "description", "location", "date", "type", "participants", "price"}

// ServeHTTP godoc
// @Summary Опубликовать событие
// @Description Создаёт событие; адрес геокодируется либо координаты берутся из запроса.
// @Tags Events
// @Accept  json
// @Produce  json
// @Param request body create.Request true "Данные события"
// @Success 201 {object} map[string]any "result:true и newEvent"
// @Failure 400 {object} map[string]string "Address not found / Missing or empty fields"
// @Router /events [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if !checkbody.Check(raw, requiredFields) {
		log.Info("missing or empty required fields")
		writeError(w, r, http.StatusBadRequest, "Missing or empty fields")
		return
	}

	draft := eventsvc.Draft{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Type:         req.Type,
		Participants: req.Participants,
		Price:        req.Price,
		Image:        req.Image,
		Creator:      req.Creator,
	}

	switch h.source {
	case eventsvc.SourceGeocoded:
		if err := json.Unmarshal(req.Location, &draft.Address); err != nil {
			log.Info("location is not a string address")
			writeError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
	case eventsvc.SourceClient:
		var loc clientLocation
		if err := json.Unmarshal(req.Location, &loc); err != nil {
			log.Info("location is not a coordinates object")
			writeError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
		draft.Latitude = loc.Latitude
		draft.Longitude = loc.Longitude
	}

	event, err := h.service.Create(r.Context(), draft, h.source)
	if err != nil {
		switch {
		case errors.Is(err, geocoding.ErrAddressNotFound):
			log.Info("address not found", slog.String("address", draft.Address))
			writeError(w, r, http.StatusBadRequest, "Address not found")
		case errors.Is(err, eventsvc.ErrInvalidDate):
			log.Info("invalid date", slog.String("date", req.Date))
			writeError(w, r, http.StatusBadRequest, "Invalid date")
		case errors.Is(err, eventsvc.ErrCoordinatesOutOfRange):
			log.Info("coordinates out of range")
			writeError(w, r, http.StatusBadRequest, "Coordinates out of range")
		default:
			log.Error("failed to create event", sl.Err(err))
			writeError(w, r, http.StatusInternalServerError, "Server error")
		}
		return
	}

	log.Info("event created", slog.String("title", event.Title))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"newEvent": event,
		"result":   true,
	})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.WriteHeader(status)
	render.JSON(w, r, map[string]string{"error": msg})
}
