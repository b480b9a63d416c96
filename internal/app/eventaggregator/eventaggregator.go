// Package eventaggregator собирает приложение: подключения к
// хранилищам, внешние клиенты, сервисы и HTTP-сервер.
package eventaggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/magabrotheeeer/event-aggregator/internal/cache"
	"github.com/magabrotheeeer/event-aggregator/internal/config"
	"github.com/magabrotheeeer/event-aggregator/internal/geocoding"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/event-aggregator/internal/media"
	"github.com/magabrotheeeer/event-aggregator/internal/migrations"
	eventsvc "github.com/magabrotheeeer/event-aggregator/internal/services/event"
	usersvc "github.com/magabrotheeeer/event-aggregator/internal/services/user"
	"github.com/magabrotheeeer/event-aggregator/internal/storage/eventstore"
	"github.com/magabrotheeeer/event-aggregator/internal/storage/repository"
)

// eventsCollection — коллекция MongoDB с событиями.
const eventsCollection = "events"

// notificationsExchange — exchange для доменных уведомлений.
const notificationsExchange = "events.notifications"

// App — собранное приложение со всеми подключениями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	mongo     *mongo.Client
	publisher *rabbitmq.Publisher
}

// New подключает хранилища, накатывает миграции и собирает HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnection.ConnectTimeout)
	defer cancel()
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoConnection.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := mongoClient.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	events := eventstore.New(mongoClient.Database(cfg.MongoConnection.Database).Collection(eventsCollection))

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	geocoder := geocoding.NewClient(cfg.Geocoder.APIKey, cfg.Geocoder.APIURL)
	uploader := media.NewClient(cfg.Media.UploadURL, cfg.Media.UploadPreset)

	// Брокер необязателен: без него события просто не анонсируются.
	var publisher *rabbitmq.Publisher
	var notifier eventsvc.Notifier
	if cfg.RabbitURL != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL, notificationsExchange)
		if err != nil {
			return nil, err
		}
		notifier = publisher
	}

	userService := usersvc.New(db, uploader, logger)
	eventService := eventsvc.New(events, geocoder, cacheRedis, notifier, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, userService, eventService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		mongo:     mongoClient,
		publisher: publisher,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		if derr := a.mongo.Disconnect(timeoutCtx); derr != nil {
			a.logger.Warn("failed to disconnect mongodb", slog.Any("err", derr))
		}
		if a.publisher != nil {
			if cerr := a.publisher.Close(); cerr != nil {
				a.logger.Warn("failed to close rabbitmq publisher", slog.Any("err", cerr))
			}
		}
		return err
	}
}
