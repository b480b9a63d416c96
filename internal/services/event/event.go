// Package event содержит бизнес-логику событий: конвейер
// валидация → геокодирование → сохранение, учёт участников,
// списки с кешированием и удаление по заголовку.
package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/magabrotheeeer/event-aggregator/internal/geocoding"
	"github.com/magabrotheeeer/event-aggregator/internal/models"
)

var (
	// ErrEventNotFound — событие отсутствует.
	ErrEventNotFound = errors.New("event not found")
	// ErrNoEvents — коллекция пуста. Бизнес-результат, не сбой.
	ErrNoEvents = errors.New("no events found")
	// ErrCoordinatesOutOfRange — клиентские координаты вне допустимых диапазонов.
	ErrCoordinatesOutOfRange = errors.New("coordinates out of range")
	// ErrInvalidDate — дату события не удалось разобрать.
	ErrInvalidDate = errors.New("invalid date")
)

// CoordinateSource — явный режим получения координат события.
// Два входа в конвейер имеют разные модели доверия, и это различие
// должно быть именованным, а не зашитым в два разных маршрута.
type CoordinateSource int

const (
	// SourceGeocoded — координаты получает сервер геокодированием адреса.
	SourceGeocoded CoordinateSource = iota
	// SourceClient — координаты присылает клиент; они проходят проверку диапазонов.
	SourceClient
)

// Draft — данные нового события до нормализации геометрии.
type Draft struct {
	Title        string
	Description  string
	Address      string
	Latitude     float64
	Longitude    float64
	Date         string
	Type         string
	Participants int
	Price        float64
	Image        string
	Creator      string
}

// EventRepository описывает контракт хранилища событий.
type EventRepository interface {
	Insert(ctx context.Context, event *models.Event) error
	ListAll(ctx context.Context) ([]models.Event, error)
	IncrementParticipants(ctx context.Context, id string) (*models.Event, error)
	DeleteFirstByTitle(ctx context.Context, titlePattern string) (int64, error)
}

// Geocoder описывает внешний сервис геокодирования.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (geocoding.Coordinates, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Notifier публикует доменные уведомления.
type Notifier interface {
	Publish(routingKey string, message any) error
}

const (
	listCacheKey = "events:list"
	listCacheTTL = 30 * time.Second

	createdRoutingKey = "event.created"
)

// Service реализует операции над событиями.
type Service struct {
	repo     EventRepository
	geocoder Geocoder
	cache    Cache
	notifier Notifier
	log      *slog.Logger
}

// New создает новый Service. notifier может быть nil — тогда
// уведомления не публикуются.
func New(repo EventRepository, geocoder Geocoder, cache Cache, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		geocoder: geocoder,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// Create сохраняет новое событие. Геометрия всегда записывается как
// GeoJSON Point с координатами в порядке [долгота, широта].
//
// В режиме SourceGeocoded отказ геокодера прерывает операцию целиком:
// частичных записей не бывает. В режиме SourceClient адрес опускается,
// а координаты проверяются на диапазон.
func (s *Service) Create(ctx context.Context, draft Draft, source CoordinateSource) (*models.Event, error) {
	date, err := parseDate(draft.Date)
	if err != nil {
		return nil, err
	}

	var location models.GeoPoint
	switch source {
	case SourceGeocoded:
		coords, err := s.geocoder.Resolve(ctx, draft.Address)
		if err != nil {
			return nil, err
		}
		location = models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{coords.Longitude, coords.Latitude},
			Address:     draft.Address,
		}
	case SourceClient:
		if draft.Latitude < -90 || draft.Latitude > 90 ||
			draft.Longitude < -180 || draft.Longitude > 180 {
			return nil, ErrCoordinatesOutOfRange
		}
		location = models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{draft.Longitude, draft.Latitude},
		}
	default:
		return nil, fmt.Errorf("unknown coordinate source: %d", source)
	}

	image := draft.Image
	if image == "" {
		image = models.DefaultEventImage
	}

	now := time.Now().UTC()
	event := &models.Event{
		Title:        draft.Title,
		Description:  draft.Description,
		Location:     location,
		Date:         date,
		Type:         draft.Type,
		Participants: draft.Participants,
		Price:        draft.Price,
		Image:        image,
		Creator:      draft.Creator,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return nil, err
	}
	s.log.Info("created new event", slog.String("title", event.Title))

	if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
		s.log.Warn("failed to invalidate events cache", slog.String("key", listCacheKey), slog.Any("err", err))
	}

	if s.notifier != nil {
		if err := s.notifier.Publish(createdRoutingKey, event); err != nil {
			s.log.Warn("failed to publish event notification", slog.Any("err", err))
		}
	}

	return event, nil
}

// Join увеличивает счётчик участников события ровно на единицу.
func (s *Service) Join(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.IncrementParticipants(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
		s.log.Warn("failed to invalidate events cache", slog.String("key", listCacheKey), slog.Any("err", err))
	}
	return event, nil
}

// ListAll возвращает все события, используя кеш. Пустая коллекция —
// ErrNoEvents.
func (s *Service) ListAll(ctx context.Context) ([]models.Event, error) {
	var cached []models.Event
	found, err := s.cache.Get(ctx, listCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read events cache", slog.Any("err", err))
	}
	if found && len(cached) > 0 {
		return cached, nil
	}

	events, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	if err := s.cache.Set(ctx, listCacheKey, events, listCacheTTL); err != nil {
		s.log.Warn("failed to cache events list", slog.Any("err", err))
	}
	return events, nil
}

// DeleteByTitle удаляет первое событие с подходящим заголовком
// (совпадение без учёта регистра) и возвращает оставшиеся события.
func (s *Service) DeleteByTitle(ctx context.Context, titlePattern string) ([]models.Event, error) {
	n, err := s.repo.DeleteFirstByTitle(ctx, titlePattern)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrEventNotFound
	}

	if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
		s.log.Warn("failed to invalidate events cache", slog.String("key", listCacheKey), slog.Any("err", err))
	}

	remaining, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return remaining, nil
}
