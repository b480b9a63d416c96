// Package updatepicture реализует HTTP-обработчик загрузки фотографии профиля.
//
// Файл приходит в multipart-поле photoFromFront, загружается во внешнее
// медиахранилище, и публичный URL сохраняется в профиле пользователя.
package updatepicture

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-aggregator/internal/http/response"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/sl"
	usersvc "github.com/magabrotheeeer/event-aggregator/internal/services/user"
)

// fileField — имя multipart-поля с фотографией.
const fileField = "photoFromFront"

// maxUploadSize ограничивает размер тела запроса с файлом.
const maxUploadSize = 10 << 20

// Service описывает интерфейс бизнес-логики обновления фотографии.
type Service interface {
	UpdatePicture(ctx context.Context, username string, file io.Reader) (string, error)
}

// Handler управляет HTTP-запросами на обновление фотографии.
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
	const op = "handlers.user.updatepicture"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")

	// Отсутствие файла не прерывает запрос здесь: сервис сначала
	// проверяет существование пользователя.
	var file io.Reader
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if f, _, err := r.FormFile(fileField); err == nil {
		defer f.Close()
		file = f
	}

	url, err := h.service.UpdatePicture(r.Context(), username, file)
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrUserNotFound):
			log.Info("user not found", slog.String("username", username))
			render.JSON(w, r, response.Err("User not found"))
		case errors.Is(err, usersvc.ErrNoFile):
			log.Info("no file uploaded", slog.String("username", username))
			render.JSON(w, r, response.Err("No file uploaded"))
		default:
			log.Error("failed to update picture", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Err("Server error"))
		}
		return
	}

	log.Info("picture updated", slog.String("username", username), slog.String("url", url))
	render.JSON(w, r, map[string]any{
		"result": true,
		"url":    url,
	})
}
